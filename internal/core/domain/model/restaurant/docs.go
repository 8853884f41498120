// Package restaurant holds the read-only restaurant snapshot the order service
// validates new orders against: whether the restaurant accepts orders and the
// authoritative name, price and availability of each catalog product.
package restaurant
