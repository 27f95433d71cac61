package dropdown

import (
	"sync"

	"gorm.io/gorm"

	categoryModel "shipment-tracking/models/category"
	courierModel "shipment-tracking/models/courier"
	customerModel "shipment-tracking/models/customer"
	itemModel "shipment-tracking/models/item"
)

// Kind identifies one cached dropdown list.
type Kind string

const (
	KindCategories Kind = "categories"
	KindItems      Kind = "items"
	KindCustomers  Kind = "customers"
	KindCouriers   Kind = "couriers"
)

// Cache holds best-effort master-data lists for form dropdowns. It is NOT
// transactionally consistent with the write path: writers invalidate after
// commit and the next read repopulates, so a stale read window exists.
type Cache struct {
	db *gorm.DB

	mu    sync.RWMutex
	lists map[Kind]interface{}
}

// NewCache creates a dropdown cache on top of db.
func NewCache(db *gorm.DB) *Cache {
	return &Cache{
		db:    db,
		lists: make(map[Kind]interface{}),
	}
}

// Get returns the cached list for kind, loading it from the database on a
// cache miss.
func (c *Cache) Get(kind Kind) (interface{}, error) {
	c.mu.RLock()
	cached, ok := c.lists[kind]
	c.mu.RUnlock()
	if ok {
		return cached, nil
	}

	fresh, err := c.loadFresh(kind)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lists[kind] = fresh
	c.mu.Unlock()
	return fresh, nil
}

// Invalidate drops the cached lists for the given kinds.
func (c *Cache) Invalidate(kinds ...Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, kind := range kinds {
		delete(c.lists, kind)
	}
}

func (c *Cache) loadFresh(kind Kind) (interface{}, error) {
	switch kind {
	case KindCategories:
		var list []categoryModel.Category
		err := c.db.Order("code").Find(&list).Error
		return list, err
	case KindItems:
		var list []itemModel.Item
		err := c.db.Order("code").Find(&list).Error
		return list, err
	case KindCustomers:
		var list []customerModel.Customer
		err := c.db.Order("code").Find(&list).Error
		return list, err
	case KindCouriers:
		var list []courierModel.Courier
		err := c.db.Order("code").Find(&list).Error
		return list, err
	}
	return nil, nil
}
