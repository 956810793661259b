package mail

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"
)

const codeSubject = "Your sign-in code"

var codeText = template.Must(template.New("code.txt").Parse(`Your sign-in code

Enter this code to finish signing in:

    {{.Code}}

This code is valid for {{.ValidFor}}.

If you did not try to sign in, you can ignore this email.
`))

var codeHTML = htmltemplate.Must(htmltemplate.New("code.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #222;">
  <h2>Your sign-in code</h2>
  <p>Enter this code to finish signing in:</p>
  <p style="font-family: monospace; font-size: 32px; letter-spacing: 6px; font-weight: bold;">{{.Code}}</p>
  <p>This code is valid for {{.ValidFor}}.</p>
  <p style="color: #777; font-size: 12px;">If you did not try to sign in, you can ignore this email.</p>
</body>
</html>
`))

type codeData struct {
	Code     string
	ValidFor string
}

type content struct {
	Subject string
	HTML    string
	Text    string
}

func renderCode(data codeData) (content, error) {
	var text, html bytes.Buffer
	if err := codeText.Execute(&text, data); err != nil {
		return content{}, fmt.Errorf("render text: %w", err)
	}
	if err := codeHTML.Execute(&html, data); err != nil {
		return content{}, fmt.Errorf("render html: %w", err)
	}
	return content{Subject: codeSubject, HTML: html.String(), Text: text.String()}, nil
}

// formatValidity renders d as "5 minutes", "1 minute" or "90 seconds".
func formatValidity(d time.Duration) string {
	if d%time.Minute == 0 {
		m := int(d / time.Minute)
		if m == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", m)
	}
	return fmt.Sprintf("%d seconds", int(d/time.Second))
}
