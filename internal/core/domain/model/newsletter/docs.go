// Package newsletter holds the marketing email subscription model.
package newsletter
