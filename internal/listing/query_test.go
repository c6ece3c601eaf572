package listing

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func parse(t *testing.T, raw string) Query {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return ParseQuery(v)
}

func TestParseQuery_SearchOverridesEmail(t *testing.T) {
	q := parse(t, "search=apple&email=d@x.com")
	assert.Equal(t, "apple", q.Search)
	assert.Empty(t, q.DonatorEmail)

	f := q.Filter()
	require.Len(t, f, 1)
	assert.Equal(t, "FoodName", f[0].Key)
	assert.Equal(t, primitive.Regex{Pattern: "apple", Options: "i"}, f[0].Value)
}

func TestParseQuery_EmailFilter(t *testing.T) {
	q := parse(t, "email=d@x.com")
	assert.Equal(t, bson.D{{Key: "Donator.Email", Value: "d@x.com"}}, q.Filter())
}

func TestParseQuery_EmptyFilter(t *testing.T) {
	assert.Equal(t, bson.D{}, parse(t, "").Filter())
}

func TestParseQuery_SearchIsLiteral(t *testing.T) {
	q := parse(t, "search="+url.QueryEscape("a.b(c"))
	f := q.Filter()
	assert.Equal(t, `a\.b\(c`, f[0].Value.(primitive.Regex).Pattern)

	assert.True(t, q.Match(&Listing{FoodName: "XA.B(Cy"}))
	assert.False(t, q.Match(&Listing{FoodName: "aXb(c"}))
}

func TestParseQuery_Sort(t *testing.T) {
	cases := []struct {
		raw     string
		wantKey string
		wantDir int
	}{
		{"sortByDate=acc", SortByDate, 1},
		{"sortByDate=dec", SortByDate, -1},
		{"sortByDate=sideways", "", 0},
		{"sortByQuantity=true", SortByQuantity, -1},
		{"sortByDate=acc&sortByQuantity=1", SortByQuantity, -1},
	}
	for _, tc := range cases {
		q := parse(t, tc.raw)
		assert.Equal(t, tc.wantKey, q.SortKey, tc.raw)
		assert.Equal(t, tc.wantDir, q.SortDir, tc.raw)
	}
}

func TestParseQuery_Limit(t *testing.T) {
	assert.Equal(t, int64(3), parse(t, "limit=3").Limit)
	assert.Zero(t, parse(t, "limit=abc").Limit)
	assert.Zero(t, parse(t, "limit=5abc").Limit)
	assert.Zero(t, parse(t, "limit=-2").Limit)
	assert.Zero(t, parse(t, "limit=0").Limit)
	assert.Zero(t, parse(t, "").Limit)
}

func TestFindOptions(t *testing.T) {
	opts := parse(t, "sortByDate=dec&limit=5").FindOptions()
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(5), *opts.Limit)
	assert.Equal(t, bson.D{{Key: SortByDate, Value: -1}}, opts.Sort)

	opts = parse(t, "").FindOptions()
	assert.Nil(t, opts.Limit)
	assert.Nil(t, opts.Sort)
}

func TestLess(t *testing.T) {
	now := time.Now()
	early := &Listing{ExpiredDateTime: now, FoodQuantity: 9}
	late := &Listing{ExpiredDateTime: now.Add(time.Hour), FoodQuantity: 1}

	assert.True(t, parse(t, "sortByDate=acc").Less(early, late))
	assert.True(t, parse(t, "sortByDate=dec").Less(late, early))
	assert.True(t, parse(t, "sortByQuantity=yes").Less(early, late))
	assert.False(t, parse(t, "").Less(early, late))
}
