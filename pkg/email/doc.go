// Package email delivers rendered HTML emails.
//
// Two senders implement EmailSender: a Postmark client for real delivery and
// a DevSender that writes each message to a directory as an .html file plus a
// .json metadata file. New picks Postmark when a server token is configured.
//
//	sender, err := email.New(cfg)
//	err = sender.SendEmail(ctx, email.SendEmailParams{
//		SendTo:   "team@example.com",
//		Subject:  "Template preview",
//		BodyHTML: html,
//		Tag:      "template-preview",
//	})
package email
