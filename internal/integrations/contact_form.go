package integrations

import (
	"bytes"
	"html/template"
	"log"

	apperrors "formguard/internal/errors"
	"formguard/internal/middleware"
	"formguard/internal/models"
	"formguard/internal/repositories"
	"formguard/internal/utils/response"
	"formguard/internal/utils/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	ContactFormName = "contact"
	contactFormPath = "/forms/contact"

	maxMessageLength = 5000
)

var contactFormTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Contact us</title>
<script src="{{.ScriptSrc}}"></script>
</head>
<body>
<form method="post" action="{{.Action}}" class="contact-form">
    <label>Name <input type="text" name="name" required></label>
    <label>Email <input type="email" name="email" required></label>
    <label>Message <textarea name="message" required></textarea></label>
    <div class="submit-region">
        {{.Widget}}
        <button type="submit">Send</button>
    </div>
</form>
</body>
</html>
`))

type contactFormPage struct {
	ScriptSrc string
	Action    string
	Widget    template.HTML
}

// ContactForm is the built-in contact form.
type ContactForm struct {
	gate        *Gate
	submissions repositories.SubmissionRepository
}

func NewContactForm(deps Deps) Adapter {
	return &ContactForm{
		gate:        deps.Gate,
		submissions: deps.Submissions,
	}
}

func (f *ContactForm) Name() string {
	return ContactFormName
}

func (f *ContactForm) Mount(router fiber.Router) {
	router.Get(contactFormPath, f.render)
	router.Post(contactFormPath, f.submit)
}

func (f *ContactForm) render(c *fiber.Ctx) error {
	markup, err := f.gate.Render(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).SendString(PublicMessage(err))
	}

	var buf bytes.Buffer
	err = contactFormTmpl.Execute(&buf, contactFormPage{
		ScriptSrc: markup.ScriptSrc,
		Action:    contactFormPath,
		// Widget markup is escaped by the injector templates.
		Widget: template.HTML(markup.Widget.HTML()),
	})
	if err != nil {
		log.Printf("failed to render %s form: %v", ContactFormName, err)
		return c.Status(fiber.StatusInternalServerError).SendString(apperrors.ErrInternal.Message)
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

func (f *ContactForm) submit(c *fiber.Ctx) error {
	fields, err := submittedFields(c)
	if err != nil {
		log.Printf("failed to parse %s submission: %v", ContactFormName, err)
		return response.Failure(c, fiber.StatusBadRequest, fiber.Map{"message": "Invalid form data."})
	}

	values := firstValues(fields)
	v := validation.New()
	v.Required("name", values["name"])
	v.Required("email", values["email"])
	v.Email("email", values["email"])
	v.Required("message", values["message"])
	v.MaxLength("message", values["message"], maxMessageLength)
	if !v.Valid() {
		return response.Failure(c, fiber.StatusBadRequest, fiber.Map{
			"message": "Please correct the errors and try again.",
			"errors":  v.Errors,
		})
	}

	client := middleware.Client(c)
	res, err := f.gate.BeforeInsertSubmission(c.UserContext(), fields, client)
	if err != nil {
		return response.Rejected(c, PublicMessage(err))
	}

	submission := &models.FormSubmission{
		Reference: uuid.NewString(),
		Form:      ContactFormName,
		Fields:    toFieldList(fields),
		ClientIP:  client.IP,
		UserAgent: client.UserAgent,
	}
	if res != nil {
		submission.RiskScore = res.Score
	}

	if err := f.submissions.Create(c.UserContext(), submission); err != nil {
		log.Printf("failed to store %s submission: %v", ContactFormName, err)
		return response.Failure(c, fiber.StatusInternalServerError, fiber.Map{"message": apperrors.ErrInternal.Message})
	}

	return response.Accepted(c, fiber.Map{
		"reference": submission.Reference,
		"message":   "Thank you for your message.",
	})
}
