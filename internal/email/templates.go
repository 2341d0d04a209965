package email

import "fmt"

// InvitationMessage builds the team invitation email
func InvitationMessage(toEmail, teamName, inviterName, acceptURL string) Message {
	subject := fmt.Sprintf("You've been invited to join %s", teamName)

	html := fmt.Sprintf(`<p>%s has invited you to join the race team <strong>%s</strong>.</p>
<p><a href="%s">Accept the invitation</a></p>
<p>This invitation expires in 7 days. If you weren't expecting it, you can ignore this email.</p>`,
		inviterName, teamName, acceptURL)

	text := fmt.Sprintf(`%s has invited you to join the race team %s.

Accept the invitation: %s

This invitation expires in 7 days. If you weren't expecting it, you can ignore this email.`,
		inviterName, teamName, acceptURL)

	return Message{ToEmail: toEmail, Subject: subject, HTML: html, Text: text}
}

// WelcomeMessage builds the post-registration email
func WelcomeMessage(toEmail, name string) Message {
	greeting := "Welcome to Paddock"
	if name != "" {
		greeting = fmt.Sprintf("Welcome to Paddock, %s", name)
	}

	html := fmt.Sprintf(`<p>%s!</p>
<p>Your 14-day trial has started. Log your first session and start tracking your setups.</p>`, greeting)

	return Message{
		ToEmail: toEmail,
		Subject: greeting,
		HTML:    html,
		Text: fmt.Sprintf(`%s!

Your 14-day trial has started. Log your first session and start tracking your setups.`, greeting),
	}
}
