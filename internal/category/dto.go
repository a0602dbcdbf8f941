package category

import "github.com/frahmantamala/finflow/internal/finance"

type CategoriesResponse struct {
	Categories []finance.Category `json:"categories"`
}
