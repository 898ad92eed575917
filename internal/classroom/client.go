// Package classroom aggregates Google Classroom data into the normalized
// course catalog served by the gateway. It owns credential exchange, the
// authenticated REST reads, response normalization and the fallback policy.
package classroom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/accademia-digitale/classroom-gateway/internal/domain"
)

const (
	defaultBaseURL  = "https://classroom.googleapis.com/v1"
	defaultPageSize = 100
	defaultTimeout  = 10 * time.Second
)

// Client performs authenticated reads against the Classroom REST API.
// Every call carries the caller's context and is bounded by the HTTP
// client timeout.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	pageSize   int
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different API base. Used by tests.
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithPageSize bounds the page size of list operations.
func WithPageSize(pageSize int) ClientOption {
	return func(c *Client) {
		if pageSize > 0 {
			c.pageSize = pageSize
		}
	}
}

// NewClient creates a client that authenticates every request with the
// given bearer token.
func NewClient(accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    defaultBaseURL,
		token:      accessToken,
		pageSize:   defaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire shapes of the Classroom API. Absent fields decode to zero values;
// absent list fields default to empty slices at the call sites.

type course struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Section            string `json:"section"`
	EnrollmentCode     string `json:"enrollmentCode"`
	DescriptionHeading string `json:"descriptionHeading"`
	Description        string `json:"description"`
	Room               string `json:"room"`
	OwnerID            string `json:"ownerId"`
	Subject            string `json:"subject"`
	AlternateLink      string `json:"alternateLink"`
	CreationTime       string `json:"creationTime"`
	UpdateTime         string `json:"updateTime"`
}

type topic struct {
	TopicID string `json:"topicId"`
	Name    string `json:"name"`
}

type courseWork struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AlternateLink string     `json:"alternateLink"`
	TopicID       string     `json:"topicId"`
	WorkType      string     `json:"workType"`
	Materials     []material `json:"materials"`
}

type courseWorkMaterial struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AlternateLink string     `json:"alternateLink"`
	TopicID       string     `json:"topicId"`
	Materials     []material `json:"materials"`
}

// material is the union of the four attachment shapes; exactly one of the
// pointers is set on a well-formed record.
type material struct {
	Link         *linkMaterial        `json:"link"`
	DriveFile    *driveFileAttachment `json:"driveFile"`
	YoutubeVideo *youtubeMaterial     `json:"youtubeVideo"`
	Form         *formMaterial        `json:"form"`
}

type linkMaterial struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// driveFileAttachment mirrors the API's doubly-nested driveFile shape.
type driveFileAttachment struct {
	DriveFile *driveFile `json:"driveFile"`
}

type driveFile struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
}

type youtubeMaterial struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	AlternateLink string `json:"alternateLink"`
}

type formMaterial struct {
	FormURL string `json:"formUrl"`
	Title   string `json:"title"`
}

type announcement struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AlternateLink string `json:"alternateLink"`
	CreationTime  string `json:"creationTime"`
	UpdateTime    string `json:"updateTime"`
}

// ListCourses lists active courses, bounded by the configured page size.
func (c *Client) ListCourses(ctx context.Context) ([]course, error) {
	q := url.Values{}
	q.Set("courseStates", "ACTIVE")
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	var out struct {
		Courses []course `json:"courses"`
	}
	if err := c.get(ctx, "/courses", q, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// GetCourse fetches one course record by id.
func (c *Client) GetCourse(ctx context.Context, id string) (*course, error) {
	var out course
	if err := c.get(ctx, "/courses/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTopics lists the topics of a course.
func (c *Client) ListTopics(ctx context.Context, courseID string) ([]topic, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	var out struct {
		Topic []topic `json:"topic"`
	}
	if err := c.get(ctx, "/courses/"+url.PathEscape(courseID)+"/topics", q, &out); err != nil {
		return nil, err
	}
	return out.Topic, nil
}

// ListCourseWork lists the coursework of a course in remote order.
func (c *Client) ListCourseWork(ctx context.Context, courseID string) ([]courseWork, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	var out struct {
		CourseWork []courseWork `json:"courseWork"`
	}
	if err := c.get(ctx, "/courses/"+url.PathEscape(courseID)+"/courseWork", q, &out); err != nil {
		return nil, err
	}
	return out.CourseWork, nil
}

// ListCourseWorkMaterials lists the standalone materials of a course.
func (c *Client) ListCourseWorkMaterials(ctx context.Context, courseID string) ([]courseWorkMaterial, error) {
	q := url.Values{}
	q.Set("pageSize", strconv.Itoa(c.pageSize))

	var out struct {
		CourseWorkMaterial []courseWorkMaterial `json:"courseWorkMaterial"`
	}
	if err := c.get(ctx, "/courses/"+url.PathEscape(courseID)+"/courseWorkMaterials", q, &out); err != nil {
		return nil, err
	}
	return out.CourseWorkMaterial, nil
}

// ListAnnouncements lists the announcements of a course.
func (c *Client) ListAnnouncements(ctx context.Context, courseID string) ([]announcement, error) {
	var out struct {
		Announcements []announcement `json:"announcements"`
	}
	if err := c.get(ctx, "/courses/"+url.PathEscape(courseID)+"/announcements", nil, &out); err != nil {
		return nil, err
	}
	return out.Announcements, nil
}

// get issues an authenticated GET and decodes the JSON response, mapping
// non-success statuses to the error taxonomy: 404 is NotFoundError, any
// other non-2xx is UpstreamError carrying the upstream status and message.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.NewInternalError("REQUEST_BUILD_FAILED", "could not build upstream request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewUpstreamError("UPSTREAM_UNREACHABLE", "request to Google Classroom failed: "+err.Error(), 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NewNotFoundError("NOT_FOUND_UPSTREAM", "resource not found on Google Classroom")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := upstreamMessage(resp)
		if msg == "" {
			msg = resp.Status
		}
		return domain.NewUpstreamError(
			"UPSTREAM_STATUS",
			fmt.Sprintf("Google Classroom returned %d: %s", resp.StatusCode, msg),
			resp.StatusCode,
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domain.NewUpstreamError("UPSTREAM_DECODE", "could not decode Google Classroom response: "+err.Error(), resp.StatusCode, err)
	}
	return nil
}

// upstreamMessage extracts the message from a Google error body, when one
// parses. Returns "" otherwise.
func upstreamMessage(resp *http.Response) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
			Status  string `json:"status"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ""
	}
	return body.Error.Message
}
