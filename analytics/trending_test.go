package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// Unique engagement weighs twice as heavily as raw traffic.
func TestTrendScoreWeighting(t *testing.T) {
	assert.Equal(t, int64(0), TrendScore(0, 0))
	assert.Equal(t, int64(100), TrendScore(100, 0))
	assert.Equal(t, int64(200), TrendScore(0, 100))
	assert.Equal(t, int64(250), TrendScore(50, 100))

	// Equal raw views: more uniques must score higher.
	assert.Greater(t, TrendScore(40, 30), TrendScore(40, 20))
}

func TestTrendingPipelineShape(t *testing.T) {
	since := time.Now().AddDate(0, 0, -7)
	pipeline := trendingPipeline(since, 10, "properties")
	require.Len(t, pipeline, 7)

	match, ok := pipeline[0]["$match"].(bson.M)
	require.True(t, ok)
	window, ok := match["viewedAt"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, since, window["$gte"])

	group, ok := pipeline[1]["$group"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "$propertyId", group["_id"])

	lookup, ok := pipeline[2]["$lookup"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "properties", lookup["from"])

	activeMatch, ok := pipeline[4]["$match"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, true, activeMatch["listing.isActive"])

	// Ordering: unique views first, raw views as the tie-break.
	sortStage, ok := pipeline[5]["$sort"].(bson.D)
	require.True(t, ok)
	require.Len(t, sortStage, 2)
	assert.Equal(t, "uniqueViews", sortStage[0].Key)
	assert.Equal(t, -1, sortStage[0].Value)
	assert.Equal(t, "views", sortStage[1].Key)
	assert.Equal(t, -1, sortStage[1].Value)

	assert.Equal(t, 10, pipeline[6]["$limit"])
}

func TestTrendingCacheKey(t *testing.T) {
	assert.Equal(t, "trending:7:10", TrendingCacheKey(7, 10))
	assert.Equal(t, "trending:30:50", TrendingCacheKey(30, 50))
}
