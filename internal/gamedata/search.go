package gamedata

import (
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/osse101/Ascendant_Go/internal/domain"
)

// shopSource implements fuzzy.Source over the catalog names
type shopSource []domain.ShopItemTemplate

func (s shopSource) Len() int {
	return len(s)
}

func (s shopSource) String(i int) string {
	return strings.ToLower(s[i].Name)
}

// FindShopItem resolves a user supplied query to a catalog template.
// Lookup order: exact id, case-insensitive name, then best fuzzy match on the name.
func (t *Tables) FindShopItem(query string) (domain.ShopItemTemplate, bool, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ShopItemTemplate{}, false, fmt.Errorf(ErrFmtItemNotFound, domain.ErrItemNotFound, query)
	}

	if item, ok := t.ShopItem(query); ok {
		return item, false, nil
	}
	for _, item := range t.Shop {
		if strings.EqualFold(item.Name, query) {
			return item, false, nil
		}
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), shopSource(t.Shop))
	if len(matches) == 0 {
		return domain.ShopItemTemplate{}, false, fmt.Errorf(ErrFmtItemNotFound, domain.ErrItemNotFound, query)
	}
	return t.Shop[matches[0].Index], true, nil
}

// FindPath resolves a path by key or case-insensitive name
func (t *Tables) FindPath(query string) (PathDef, error) {
	if p, ok := t.Path(query); ok {
		return p, nil
	}
	for _, p := range t.Paths {
		if strings.EqualFold(p.Name, query) || strings.EqualFold(p.Key, query) {
			return p, nil
		}
	}
	return PathDef{}, fmt.Errorf(ErrFmtPathNotFound, domain.ErrPathNotFound, query)
}
