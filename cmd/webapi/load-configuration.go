package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ardanlabs/conf"
)

// Configuration gathers every tunable of the executable; values come from
// environment variables prefixed with ATELIER or from command line flags.
type Configuration struct {
	Debug bool `conf:"default:false"`
	Web   struct {
		APIHost         string        `conf:"default:0.0.0.0:3000"`
		ReadTimeout     time.Duration `conf:"default:5s"`
		WriteTimeout    time.Duration `conf:"default:10s"`
		ShutdownTimeout time.Duration `conf:"default:20s"`
		StaticDir       string        `conf:"default:public"`
	}
	DB struct {
		Filename string `conf:"default:data/artist.db"`
	}
	Uploads struct {
		Path string `conf:"default:public/uploads"`

		// MaxSize caps uploaded images, in bytes
		MaxSize      int64  `conf:"default:10485760"`
		AllowedTypes string `conf:"default:.jpg .jpeg .png .gif .webp"`
	}
	Session struct {
		Secret string        `conf:"default:insecure-development-secret,noprint"`
		TTL    time.Duration `conf:"default:24h"`
	}
	Admin struct {
		// one-time seed for the users table; ignored once any user exists
		Username string `conf:"default:admin"`
		Password string `conf:"default:admin123,noprint"`
		Email    string `conf:"default:admin@example.com"`
	}
	Site struct {
		DegradeOnError bool `conf:"default:true"`

		// ServicesFile optionally overrides the built-in services catalogue
		ServicesFile string
	}
}

func loadConfiguration() (cfg Configuration, err error) {
	if err = conf.Parse(os.Args[1:], "ATELIER", &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			usage, usageErr := conf.Usage("ATELIER", &cfg)
			if usageErr != nil {
				return cfg, fmt.Errorf("generating config usage: %w", usageErr)
			}
			fmt.Println(usage)
			return cfg, err
		}
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}
