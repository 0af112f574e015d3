// Package lib holds the supporting libraries that sit beside the request
// path: background jobs (asynq on Redis), email delivery (Resend) and small
// shared utilities.
package lib
