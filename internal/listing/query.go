package listing

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SortByDate     = "ExpiredDateTime"
	SortByQuantity = "FoodQuantity"
)

// Query is the parsed form of the GET /foods query string.
//
// Search and DonatorEmail are never both set: a search term wins and the
// email is dropped. SortDir is 1 or -1 when SortKey is set.
type Query struct {
	Search       string
	DonatorEmail string
	SortKey      string
	SortDir      int
	Limit        int64
}

// ParseQuery reads search, email, sortByDate, sortByQuantity and limit.
// Unknown sort values and unparsable limits are ignored rather than rejected.
func ParseQuery(v url.Values) Query {
	var q Query
	if s := v.Get("search"); s != "" {
		q.Search = s
	} else if e := v.Get("email"); e != "" {
		q.DonatorEmail = e
	}

	switch v.Get("sortByDate") {
	case "acc":
		q.SortKey, q.SortDir = SortByDate, 1
	case "dec":
		q.SortKey, q.SortDir = SortByDate, -1
	}
	// quantity overrides date
	if v.Get("sortByQuantity") != "" {
		q.SortKey, q.SortDir = SortByQuantity, -1
	}

	if n, err := strconv.Atoi(v.Get("limit")); err == nil && n > 0 {
		q.Limit = int64(n)
	}
	return q
}

// Filter returns the Mongo filter document for q.
func (q Query) Filter() bson.D {
	switch {
	case q.Search != "":
		return bson.D{{Key: "FoodName", Value: primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}}}
	case q.DonatorEmail != "":
		return bson.D{{Key: "Donator.Email", Value: q.DonatorEmail}}
	default:
		return bson.D{}
	}
}

// FindOptions returns sort and limit options for q.
func (q Query) FindOptions() *options.FindOptions {
	opts := options.Find()
	if q.SortKey != "" {
		opts.SetSort(bson.D{{Key: q.SortKey, Value: q.SortDir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(q.Limit)
	}
	return opts
}

// Match reports whether l passes q's filter. It must agree with Filter.
func (q Query) Match(l *Listing) bool {
	switch {
	case q.Search != "":
		return strings.Contains(strings.ToLower(l.FoodName), strings.ToLower(q.Search))
	case q.DonatorEmail != "":
		return l.Donator.Email == q.DonatorEmail
	default:
		return true
	}
}

// Less orders a before b under q's sort. With no sort key nothing is less.
func (q Query) Less(a, b *Listing) bool {
	switch q.SortKey {
	case SortByDate:
		if q.SortDir < 0 {
			return a.ExpiredDateTime.After(b.ExpiredDateTime)
		}
		return a.ExpiredDateTime.Before(b.ExpiredDateTime)
	case SortByQuantity:
		if q.SortDir < 0 {
			return a.FoodQuantity > b.FoodQuantity
		}
		return a.FoodQuantity < b.FoodQuantity
	}
	return false
}
