package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/WillCS/uqplanner/internal/timetable"
)

// Fetcher retrieves a single course listing.
type Fetcher interface {
	FetchSubject(ctx context.Context, q Query) (timetable.Listing, error)
}

// Query identifies the offering to fetch.
type Query struct {
	CourseCode string
	Campus     string // empty means all campuses
	Mode       string
	Year       int
	Semester   int // 0 means all semesters
}

// Semester is an entry of the feed's active semester list.
type Semester struct {
	Year     int      `json:"year"`
	Semester int      `json:"semester"`
	Active   bool     `json:"active"`
	Weeks    []string `json:"weeks"`
}

// Client talks to the timetable feed proxy.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  zerolog.Logger
}

// NewClient creates a Client for the proxy at baseURL. Endpoints are
// addressed as "<baseURL>?/<name>".
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) *Client {
	c := resty.New().
		SetHeader("Accept", "application/json, text/javascript, */*; q=0.01").
		SetHeader("X-Requested-With", "XMLHttpRequest").
		SetTimeout(timeout)

	return &Client{http: c, baseURL: baseURL, logger: logger}
}

func (c *Client) endpoint(name string) string {
	return c.baseURL + "?/" + name
}

// searchForm builds the subject search form the proxy expects.
func searchForm(q Query) url.Values {
	campus := q.Campus
	if campus == "" {
		campus = "ALL"
	}
	semester := "ALL"
	if q.Semester != 0 {
		semester = "S" + strconv.Itoa(q.Semester)
	}

	form := url.Values{}
	form.Set("search-term", q.CourseCode)
	form.Set("semester", semester)
	form.Set("campus", campus)
	form.Set("faculty", "ALL")
	form.Set("type", "ALL")
	for _, d := range []string{"1", "2", "3", "4", "5", "6", "0"} {
		form.Add("days", d)
	}
	form.Set("start-time", "00:00")
	form.Set("end-time", "23:00")
	if q.Year != 0 {
		form.Set("year", strconv.Itoa(q.Year))
	}
	return form
}

// FetchSubject searches the feed and reshapes the matching offering.
func (c *Client) FetchSubject(ctx context.Context, q Query) (timetable.Listing, error) {
	if _, err := DeliveryModeByID(q.Mode); err != nil {
		return timetable.Listing{}, err
	}

	c.logger.Debug().
		Str("course", q.CourseCode).
		Str("campus", q.Campus).
		Str("mode", q.Mode).
		Int("semester", q.Semester).
		Msg("fetching subject")

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(searchForm(q)).
		Post(c.endpoint("subjects"))
	if err != nil {
		return timetable.Listing{}, fmt.Errorf("failed to query feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return timetable.Listing{}, fmt.Errorf("feed returned status %d: %s", resp.StatusCode(), resp.String())
	}

	listing, err := Reformat(q.CourseCode, unwrapJSONString(resp.Body()), q.Mode)
	if err != nil {
		return timetable.Listing{}, err
	}

	c.logger.Debug().
		Str("course", listing.Name).
		Int("components", len(listing.Components)).
		Msg("fetched subject")
	return listing, nil
}

// ActiveSemesters lists the semesters the feed currently serves.
func (c *Client) ActiveSemesters(ctx context.Context) ([]Semester, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.endpoint("currentSemesters"))
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var semesters []Semester
	if err := json.Unmarshal(unwrapJSONString(resp.Body()), &semesters); err != nil {
		return nil, fmt.Errorf("%w: semesters: %v", ErrParse, err)
	}
	return semesters, nil
}

// unwrapJSONString returns the inner document when the proxy has encoded
// its JSON response as a JSON string.
func unwrapJSONString(body []byte) []byte {
	var inner string
	if err := json.Unmarshal(body, &inner); err != nil {
		return body
	}
	return []byte(inner)
}
