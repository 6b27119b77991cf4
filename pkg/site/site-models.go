package site

import (
	"encoding/json"
	"net/http"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContactData carries a contact form submission; nothing is persisted, the
// submission is only logged and acknowledged.
type ContactData struct {
	Name    string
	Email   string
	Service string
	Message string
}

// parseContact reads a submission in either of the encodings the endpoint
// receives: native posts from the contact page's form and JSON from API clients.
func parseContact(request *http.Request) (data ContactData, err error) {
	if strings.HasPrefix(request.Header.Get("Content-Type"), "application/json") {
		err = json.NewDecoder(request.Body).Decode(&data)
		return data, err
	}

	if err = request.ParseForm(); err != nil {
		return data, err
	}
	return ContactData{
		Name:    request.FormValue("name"),
		Email:   request.FormValue("email"),
		Service: request.FormValue("service"),
		Message: request.FormValue("message"),
	}, nil
}

func (data ContactData) Validate() error {
	return validation.ValidateStruct(&data,
		validation.Field(&data.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&data.Email, validation.Required, is.Email),
		validation.Field(&data.Service, validation.Length(0, 100)),
		validation.Field(&data.Message, validation.Required, validation.Length(1, 3000)),
	)
}
