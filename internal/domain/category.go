package domain

// AllCategories is the storefront filter entry that matches every product.
const AllCategories = "All"

// UncategorizedCategory receives products whose category was deleted when no other category remains.
const UncategorizedCategory = "Uncategorized"
