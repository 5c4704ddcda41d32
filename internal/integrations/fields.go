package integrations

import (
	"strings"

	"formguard/internal/models"
	"formguard/internal/services/recaptcha"

	"github.com/gofiber/fiber/v2"
)

// submittedFields returns the posted fields. URL encoded bodies keep their
// order; multipart values come back sorted by name since the parsed form is a map.
func submittedFields(c *fiber.Ctx) ([]recaptcha.Field, error) {
	if strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		form, err := c.MultipartForm()
		if err != nil {
			return nil, err
		}
		values := make(map[string]string, len(form.Value))
		for name, vs := range form.Value {
			if len(vs) > 0 {
				values[name] = vs[0]
			}
		}
		return recaptcha.FieldsFromMap(values), nil
	}

	var fields []recaptcha.Field
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		fields = append(fields, recaptcha.Field{Key: string(key), Value: string(value)})
	})
	return fields, nil
}

func firstValues(fields []recaptcha.Field) map[string]string {
	values := make(map[string]string, len(fields))
	for _, f := range fields {
		if _, ok := values[f.Key]; !ok {
			values[f.Key] = f.Value
		}
	}
	return values
}

func toFieldList(fields []recaptcha.Field) models.FieldList {
	list := make(models.FieldList, 0, len(fields))
	for _, f := range fields {
		list = append(list, models.SubmittedField{Name: f.Key, Value: f.Value})
	}
	return list
}
