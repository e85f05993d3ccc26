package services

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/AnshRaj112/blogverse-backend/internal/models"
	"github.com/AnshRaj112/blogverse-backend/internal/store"
)

// Listing sizes for the home page sections.
const (
	RecentBlogsLimit   = 6
	FeaturedBlogsLimit = 10
	TrendingBlogsSkip  = 5
	TrendingBlogsLimit = 10
	BannerBlogsLimit   = 5
)

// BuildBlogFilter turns the all-blogs query parameters into a store filter.
func BuildBlogFilter(q, category string) store.BlogFilter {
	return store.BlogFilter{
		TitleContains: strings.TrimSpace(q),
		Category:      category,
	}
}

// FeaturedBlogs ranks posts by the length of their long description, longest first, and
// returns at most n of them. Posts with equal length keep their store order.
//
// The whole collection is ranked in memory on every call, so this only holds up while the
// collection stays small.
func FeaturedBlogs(blogs []models.Blog, n int) []models.Blog {
	ranked := make([]models.Blog, len(blogs))
	copy(ranked, blogs)
	sort.SliceStable(ranked, func(i, j int) bool {
		return utf8.RuneCountInString(ranked[i].LongDescription) > utf8.RuneCountInString(ranked[j].LongDescription)
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
