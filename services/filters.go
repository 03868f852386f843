package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accepted layouts for fromDate/toDate. Date-only input is taken as start of
// that day in UTC.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// TodoListQuery carries the raw query-string parameters for listing todos.
type TodoListQuery struct {
	Title          string
	Completed      string
	FromDate       string
	ToDate         string
	Page           string
	Limit          string
	IncludeDeleted bool
}

// UserListQuery carries the raw query-string parameters for listing users.
type UserListQuery struct {
	Name           string
	Email          string
	Page           string
	Limit          string
	IncludeDeleted bool
}

// buildTodoFilter shapes loosely-typed query parameters into store filter
// criteria. Absent or empty parameters emit no key.
func buildTodoFilter(q TodoListQuery) (bson.M, error) {
	filter := bson.M{}

	if title := strings.TrimSpace(q.Title); title != "" {
		filter["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(title), Options: "i"}
	}

	if q.Completed != "" {
		completed, err := strconv.ParseBool(q.Completed)
		if err != nil {
			return nil, &ValidationError{Resource: "todo", Field: "completed", Message: "must be true or false"}
		}
		filter["completed"] = completed
	}

	if q.FromDate != "" || q.ToDate != "" {
		createdAt := bson.M{}
		if q.FromDate != "" {
			from, _, err := parseDate(q.FromDate)
			if err != nil {
				return nil, &ValidationError{Resource: "todo", Field: "fromDate", Message: "use YYYY-MM-DD or RFC3339"}
			}
			createdAt["$gte"] = from
		}
		if q.ToDate != "" {
			to, dateOnly, err := parseDate(q.ToDate)
			if err != nil {
				return nil, &ValidationError{Resource: "todo", Field: "toDate", Message: "use YYYY-MM-DD or RFC3339"}
			}
			// a bare date as the upper bound means "through that whole day"
			if dateOnly {
				to = to.AddDate(0, 0, 1).Add(-time.Millisecond)
			}
			createdAt["$lte"] = to
		}
		filter["created_at"] = createdAt
	}

	return filter, nil
}

func buildUserFilter(q UserListQuery) (bson.M, error) {
	filter := bson.M{}

	if name := strings.TrimSpace(q.Name); name != "" {
		filter["name"] = primitive.Regex{Pattern: regexp.QuoteMeta(name), Options: "i"}
	}
	if email := strings.TrimSpace(q.Email); email != "" {
		filter["email"] = email
	}

	return filter, nil
}

func parseDate(s string) (t time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if layout == "2006-01-02" {
				return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true, nil
			}
			return t, false, nil
		}
		lastErr = err
	}
	return time.Time{}, false, lastErr
}
