package items

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	errs "github.com/xyz-asif/lostfound/pkg/errors"
)

func TestViewIncrementUsesIncNeverSet(t *testing.T) {
	now := time.Now()
	update := viewIncrement(now)

	// the counter must go through $inc; a $set on views would let
	// concurrent fetches lose increments
	require.Equal(t, bson.M{"views": 1}, update["$inc"])

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)
	require.Equal(t, now, set["lastViewed"])
	require.NotContains(t, set, "views")
}

func TestViewIncrementAdvancesLastViewed(t *testing.T) {
	first := viewIncrement(time.Now())
	second := viewIncrement(time.Now().Add(time.Second))

	firstSet := first["$set"].(bson.M)["lastViewed"].(time.Time)
	secondSet := second["$set"].(bson.M)["lastViewed"].(time.Time)
	require.True(t, secondSet.After(firstSet))
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()

	parsed, err := ParseID(oid.Hex())
	require.NoError(t, err)
	require.Equal(t, oid, parsed)

	_, err = ParseID("not-a-hex-id")
	require.ErrorIs(t, err, errs.ErrNotFound)
}
