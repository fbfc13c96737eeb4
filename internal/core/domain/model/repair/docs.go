// Package repair models repair tickets, their stage graph and the budget
// approval that gates repairs outside warranty.
package repair
