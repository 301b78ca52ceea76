package forms

// Contact is the contact-us form.
type Contact struct {
	FullName string `json:"fullName" validate:"required,max=200"`
	Mobile   string `json:"mobile" validate:"omitempty,max=40"`
	Email    string `json:"email" validate:"required,email"`
	Address  string `json:"address" validate:"required,max=500"`
	City     string `json:"city" validate:"required,max=100"`
	Country  string `json:"country" validate:"required,max=100"`
	Message  string `json:"message" validate:"required,max=5000"`
}

func (c Contact) fields() map[string]string {
	return map[string]string{
		"subject":  contactSubject,
		"fullName": c.FullName,
		"mobile":   c.Mobile,
		"email":    c.Email,
		"address":  c.Address,
		"city":     c.City,
		"country":  c.Country,
		"message":  c.Message,
	}
}

// Application is the careers form that links to an externally hosted CV.
type Application struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	CVLink  string `json:"cv_link" validate:"required,url"`
	Message string `json:"message" validate:"omitempty,max=5000"`
}

func (a Application) fields() map[string]string {
	return map[string]string{
		"name":    a.Name,
		"email":   a.Email,
		"cv_link": a.CVLink,
		"message": a.Message,
	}
}

// CVSubmission is a careers submission carrying the CV file itself.
type CVSubmission struct {
	Name     string `validate:"required,max=200"`
	Email    string `validate:"required,email"`
	Message  string `validate:"omitempty,max=5000"`
	Filename string
	File     []byte
}
