// Package production models production orders, their stage graph and the
// final units generated for final-product orders.
package production
