// Package model holds the drinks domain types shared by the service,
// repository and handler layers.
package model
