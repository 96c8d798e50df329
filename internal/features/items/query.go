package items

import (
	"regexp"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xyz-asif/lostfound/internal/pkg/pagination"
)

// Sort keys callers may request. Anything else falls back to createdAt so
// query parameters can't reach arbitrary document fields.
var allowedSortFields = map[string]bool{
	"createdAt":    true,
	"updatedAt":    true,
	"dateOccurred": true,
	"views":        true,
	"title":        true,
}

// ListQuery captures the browse parameters for the public listing.
type ListQuery struct {
	Type      string
	Category  string
	Location  string
	Search    string
	SortBy    string
	SortOrder string
	Page      pagination.Request
}

// ParseListQuery reads and sanitizes the listing parameters.
func ParseListQuery(c *gin.Context) ListQuery {
	sortBy := c.DefaultQuery("sortBy", "createdAt")
	if !allowedSortFields[sortBy] {
		sortBy = "createdAt"
	}

	sortOrder := c.DefaultQuery("sortOrder", "desc")
	if sortOrder != "asc" {
		sortOrder = "desc"
	}

	return ListQuery{
		Type:      c.Query("type"),
		Category:  c.Query("category"),
		Location:  c.Query("location"),
		Search:    c.Query("search"),
		SortBy:    sortBy,
		SortOrder: sortOrder,
		Page:      pagination.FromQuery(c.Query("page"), c.Query("limit")),
	}
}

// Filter builds the Mongo predicate. The listing only ever shows active
// reports; type and category narrow by exact match, location by
// case-insensitive substring, search by the text index.
func (q ListQuery) Filter() bson.M {
	filter := bson.M{"status": StatusActive}

	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.Location != "" {
		filter["location"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(q.Location),
			Options: "i",
		}
	}
	if q.Search != "" {
		filter["$text"] = bson.M{"$search": q.Search}
	}

	return filter
}

// Sort builds the ordering. With a search term, relevance leads and the
// requested key breaks score ties. The trailing _id key keeps the order
// stable when the primary key has duplicates, so pages don't drift
// between requests.
func (q ListQuery) Sort() bson.D {
	dir := -1
	if q.SortOrder == "asc" {
		dir = 1
	}

	var sort bson.D
	if q.Search != "" {
		sort = append(sort, bson.E{Key: "score", Value: bson.M{"$meta": "textScore"}})
	}
	sort = append(sort, bson.E{Key: q.SortBy, Value: dir})
	if q.SortBy != "_id" {
		sort = append(sort, bson.E{Key: "_id", Value: dir})
	}

	return sort
}

// NeedsScore reports whether the query requires the textScore projection.
func (q ListQuery) NeedsScore() bool {
	return q.Search != ""
}

// MyItemsQuery captures the filters for the owner's own listing, which
// may include non-active reports.
type MyItemsQuery struct {
	Type   string
	Status string
	Page   pagination.Request
}

// ParseMyItemsQuery reads the "my items" parameters.
func ParseMyItemsQuery(c *gin.Context) MyItemsQuery {
	return MyItemsQuery{
		Type:   c.Query("type"),
		Status: c.Query("status"),
		Page:   pagination.FromQuery(c.Query("page"), c.Query("limit")),
	}
}

// Filter builds the owner-scoped predicate.
func (q MyItemsQuery) Filter(owner primitive.ObjectID) bson.M {
	filter := bson.M{"userId": owner}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	return filter
}
