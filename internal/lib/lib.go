// Package lib holds modules that do not fit strictly into other layers:
// background job processing (Asynq on Redis) in lib/job and the Resend
// email client in lib/email.
package lib
