// Package account serves registration, login, logout and the profile page.
// A successful registration or login sets the signed identity cookie and
// redirects to /account/me.
package account
