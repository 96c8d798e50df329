package items

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func listContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/items?"+rawQuery, nil)
	return c
}

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery(listContext(t, ""))

	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)
	assert.Equal(t, 1, q.Page.Page)
	assert.Equal(t, 12, q.Page.Limit)
	assert.Empty(t, q.Type)
	assert.Empty(t, q.Search)
}

func TestParseListQueryRejectsUnknownSortField(t *testing.T) {
	q := ParseListQuery(listContext(t, "sortBy=password&sortOrder=sideways"))

	assert.Equal(t, "createdAt", q.SortBy)
	assert.Equal(t, "desc", q.SortOrder)
}

func TestParseListQueryAcceptsKnownSortField(t *testing.T) {
	q := ParseListQuery(listContext(t, "sortBy=views&sortOrder=asc"))

	assert.Equal(t, "views", q.SortBy)
	assert.Equal(t, "asc", q.SortOrder)
}

func TestFilterAlwaysScopesToActive(t *testing.T) {
	filter := ListQuery{}.Filter()

	assert.Equal(t, bson.M{"status": StatusActive}, filter)
}

func TestFilterNarrowsWithEachParameter(t *testing.T) {
	base := ListQuery{}
	withType := ListQuery{Type: TypeLost}
	withAll := ListQuery{Type: TypeLost, Category: "Keys", Location: "library", Search: "blue backpack"}

	// every added parameter adds a predicate, never removes one
	assert.Len(t, base.Filter(), 1)
	assert.Len(t, withType.Filter(), 2)
	assert.Len(t, withAll.Filter(), 5)

	filter := withAll.Filter()
	assert.Equal(t, TypeLost, filter["type"])
	assert.Equal(t, "Keys", filter["category"])
	assert.Equal(t, bson.M{"$search": "blue backpack"}, filter["$text"])
}

func TestFilterEscapesLocationRegex(t *testing.T) {
	filter := ListQuery{Location: "a.b(c)"}.Filter()

	re, ok := filter["location"].(primitive.Regex)
	assert.True(t, ok)
	assert.Equal(t, `a\.b\(c\)`, re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestSortAppendsIDTieBreak(t *testing.T) {
	sort := ListQuery{SortBy: "createdAt", SortOrder: "desc"}.Sort()

	assert.Equal(t, bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}, sort)
}

func TestSortAscending(t *testing.T) {
	sort := ListQuery{SortBy: "views", SortOrder: "asc"}.Sort()

	assert.Equal(t, bson.D{
		{Key: "views", Value: 1},
		{Key: "_id", Value: 1},
	}, sort)
}

func TestSortLeadsWithScoreWhenSearching(t *testing.T) {
	q := ListQuery{Search: "wallet", SortBy: "createdAt", SortOrder: "desc"}
	sort := q.Sort()

	assert.True(t, q.NeedsScore())
	assert.Equal(t, "score", sort[0].Key)
	assert.Equal(t, bson.M{"$meta": "textScore"}, sort[0].Value)
	assert.Equal(t, "createdAt", sort[1].Key)
	assert.Equal(t, "_id", sort[2].Key)
}

func TestMyItemsFilterScopesToOwner(t *testing.T) {
	owner := primitive.NewObjectID()

	filter := MyItemsQuery{}.Filter(owner)
	assert.Equal(t, bson.M{"userId": owner}, filter)

	filter = MyItemsQuery{Type: TypeFound, Status: StatusClaimed}.Filter(owner)
	assert.Equal(t, owner, filter["userId"])
	assert.Equal(t, TypeFound, filter["type"])
	assert.Equal(t, StatusClaimed, filter["status"])
}
