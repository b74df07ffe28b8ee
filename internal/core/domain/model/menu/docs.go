// Package menu models the read side of the menu that order pricing depends on:
// menu items, their modifier groups and the customer's selection of modifier
// choices.
//
// Price is the pricing engine. It is pure: the same base price, selection and
// groups always yield the same unit price, and no rounding happens here.
// Rounding to currency precision is done where amounts are persisted or shown.
//
// Menu definitions may change between the moment a customer fills a cart and
// the moment it is priced, so unknown groups and unknown choice names are
// ignored rather than rejected.
package menu
