package sqlite

// schema creates the catalog and users tables when absent. Timestamps default to
// CURRENT_TIMESTAMP so rows inserted outside the application still carry dates.
const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS paintings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT NOT NULL,
		description TEXT,
		medium TEXT,
		year INTEGER,
		category TEXT DEFAULT 'paintings',
		price DECIMAL(10,2),
		image_url TEXT,
		dimensions TEXT,
		availability TEXT DEFAULT 'available',
		featured BOOLEAN DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

CREATE TABLE
	IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		email TEXT,
		role TEXT DEFAULT 'admin',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

COMMIT;
`

type samplePainting struct {
	title        string
	description  string
	medium       string
	year         int
	category     string
	price        float64
	imageURL     string
	dimensions   string
	availability string
	featured     bool
}

// samplePaintings populates an empty catalog with a presentable portfolio,
// so the site renders meaningful pages on a first run.
var samplePaintings = []samplePainting{
	{
		title:        "Ethereal Landscape",
		description:  "A serene landscape capturing the essence of tranquility through soft brushstrokes and muted colors.",
		medium:       "Oil on canvas",
		year:         2024,
		category:     "paintings",
		price:        1200.00,
		imageURL:     "https://images.unsplash.com/photo-1541961017774-22349e4a1262?w=500&h=500&fit=crop",
		dimensions:   `24" x 36"`,
		availability: "available",
		featured:     true,
	},
	{
		title:        "Urban Reflections",
		description:  "Modern cityscape with vibrant color contrasts reflecting the energy of metropolitan life.",
		medium:       "Acrylic on canvas",
		year:         2024,
		category:     "paintings",
		price:        950.00,
		imageURL:     "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500&h=500&fit=crop",
		dimensions:   `20" x 30"`,
		availability: "available",
		featured:     true,
	},
	{
		title:        "Digital Dreams",
		description:  "Exploring the boundaries between reality and digital art through innovative techniques.",
		medium:       "Digital illustration",
		year:         2024,
		category:     "digital",
		price:        600.00,
		imageURL:     "https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe?w=500&h=500&fit=crop",
		dimensions:   `Print: 16" x 20"`,
		availability: "available",
	},
	{
		title:        "Sculptural Form",
		description:  "Three-dimensional exploration of space and texture using mixed media techniques.",
		medium:       "Mixed media sculpture",
		year:         2024,
		category:     "sculptures",
		price:        2200.00,
		imageURL:     "https://images.unsplash.com/photo-1578662996442-48f60103fc96?w=500&h=500&fit=crop",
		dimensions:   `12" x 8" x 15"`,
		availability: "available",
	},
	{
		title:        "Abstract Harmony",
		description:  "Flowing forms in perfect balance, representing the delicate relationship between chaos and order.",
		medium:       "Watercolor on paper",
		year:         2024,
		category:     "paintings",
		price:        750.00,
		imageURL:     "https://images.unsplash.com/photo-1547891654-e66ed7ebb968?w=500&h=500&fit=crop",
		dimensions:   `18" x 24"`,
		availability: "sold",
	},
	{
		title:        "Cyber Bloom",
		description:  "Nature meets technology in this vibrant piece exploring digital organic forms.",
		medium:       "Digital art",
		year:         2024,
		category:     "digital",
		price:        450.00,
		imageURL:     "https://images.unsplash.com/photo-1618556450994-a6a128ef0d9d?w=500&h=500&fit=crop",
		dimensions:   `Print: 12" x 16"`,
		availability: "available",
		featured:     true,
	},
}
