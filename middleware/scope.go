package middleware

import (
	"net/http"

	"dishdash-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScopeKind selects which column carries the mandatory role-derived
// constraint for a resource. The mapping is fixed per route at registration
// time rather than inferred from the model at call time.
type ScopeKind int

const (
	// ScopeRestaurant constrains rows carrying a restaurant_id column
	// (categories, menus, coupons, orders seen by an owner).
	ScopeRestaurant ScopeKind = iota
	// ScopeCategory constrains rows carrying a category_id column (items).
	ScopeCategory
	// ScopeUser constrains rows carrying a user_id column (orders seen by
	// a regular user).
	ScopeUser
	// ScopeOrder combines both: owners see their restaurant's orders,
	// users see their own.
	ScopeOrder
)

const scopeContextKey = "scope"

type scopeCondition struct {
	query string
	args  []interface{}
}

// Scope is the mandatory base filter derived from the caller's role. It is
// composed with user-supplied filters by AND and must never be overwritten
// by them.
type Scope struct {
	conditions []scopeCondition
}

func (s *Scope) where(query string, args ...interface{}) {
	s.conditions = append(s.conditions, scopeCondition{query: query, args: args})
}

// Apply attaches the scope constraints to a query.
func (s Scope) Apply(tx *gorm.DB) *gorm.DB {
	for _, cond := range s.conditions {
		tx = tx.Where(cond.query, cond.args...)
	}
	return tx
}

// GetScope returns the scope resolved for this request. Routes without a
// scope middleware get an unrestricted scope.
func GetScope(c *gin.Context) Scope {
	if v, exists := c.Get(scopeContextKey); exists {
		if s, ok := v.(Scope); ok {
			return s
		}
	}
	return Scope{}
}

// ResolveScope computes the role-derived base filter before any data access
// happens for the request:
//
//   - admin: unrestricted
//   - owner: constrained to the owner's restaurant; 403 when the owner has
//     no restaurant (hard stop, not an empty result)
//   - user: constrained to the caller (ScopeUser only)
//
// A nested parent route parameter (e.g. /categories/:id/items) overrides the
// constraint with the parent's id.
func ResolveScope(db *gorm.DB, kind ScopeKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var scope Scope

		role, _ := c.Get("user_role")
		roleStr, _ := role.(string)

		switch roleStr {
		case models.RoleOwner:
			userID, _ := c.Get("user_id")
			var restaurant models.Restaurant
			if err := db.Where("owner_id = ?", userID).First(&restaurant).Error; err != nil {
				c.JSON(http.StatusForbidden, gin.H{"error": "Owner does not have a restaurant"})
				c.Abort()
				return
			}
			switch kind {
			case ScopeRestaurant, ScopeOrder:
				scope.where("restaurant_id = ?", restaurant.ID)
			case ScopeCategory:
				scope.where("category_id IN (?)",
					db.Session(&gorm.Session{NewDB: true}).
						Model(&models.Category{}).
						Select("id").
						Where("restaurant_id = ?", restaurant.ID))
			}
		case models.RoleUser:
			if kind == ScopeUser || kind == ScopeOrder {
				userID, _ := c.Get("user_id")
				scope.where("user_id = ?", userID)
			}
		}

		// Nested route parent overrides the role-derived constraint for the
		// child listing.
		if parent := c.Param("id"); parent != "" {
			if parentID, err := uuid.Parse(parent); err == nil {
				switch kind {
				case ScopeCategory:
					scope = Scope{}
					scope.where("category_id = ?", parentID)
				case ScopeRestaurant:
					scope = Scope{}
					scope.where("restaurant_id = ?", parentID)
				}
			}
		}

		c.Set(scopeContextKey, scope)
		c.Next()
	}
}
