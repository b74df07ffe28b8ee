// Package staff models the authenticated people allowed to operate the kitchen board.
package staff
