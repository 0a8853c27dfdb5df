// Package email sends transactional mail. Production uses Postmark; without
// a POSTMARK_SERVER_TOKEN a DevSender writes messages to MAIL_DEV_DIR.
// SendWelcome renders and sends the message new accounts receive.
package email
