// Package resource describes the backend's CRUD resources: their paths, the
// cache keys a write invalidates, and the messages shown after a write.
package resource

import (
	"strconv"
	"strings"

	"github.com/theirongolddev/bizdash/internal/api"
	"github.com/theirongolddev/bizdash/internal/query"
)

// Method is a write operation.
type Method string

const (
	Create Method = "CREATE"
	Update Method = "UPDATE"
	Delete Method = "DELETE"
)

// Message is a notification title and description.
type Message struct {
	Title       string
	Description string
}

// Messages holds the success toast per method and the fallback error text
// used when the server gives no message.
type Messages struct {
	Created  Message
	Updated  Message
	Deleted  Message
	Fallback map[Method]string
}

// Success returns the success message for m.
func (ms Messages) Success(m Method) Message {
	switch m {
	case Create:
		return ms.Created
	case Delete:
		return ms.Deleted
	default:
		return ms.Updated
	}
}

// Failure returns the fallback error description for m.
func (ms Messages) Failure(m Method) string {
	if s, ok := ms.Fallback[m]; ok && s != "" {
		return s
	}
	return "Something went wrong. Please try again."
}

// Descriptor identifies a resource.
type Descriptor struct {
	// Name is the resource's own cache key and the tag on its inputs.
	Name string
	// Path is the segment under /api/.
	Path string
	// Invalidates lists the cache key prefixes marked stale after any
	// successful write.
	Invalidates []string
	Messages    Messages
}

// ListKey is the cache key of the resource's collection.
func (d Descriptor) ListKey() string {
	return query.Key(d.Name)
}

// ItemKey is the cache key of one record.
func (d Descriptor) ItemKey(id int64) string {
	return query.Key(d.Name, strconv.FormatInt(id, 10))
}

// CollectionPath is /api/<path>.
func (d Descriptor) CollectionPath() string {
	return api.CollectionPath(d.Path)
}

// ItemPath is /api/<path>/<id>.
func (d Descriptor) ItemPath(id int64) string {
	return api.ItemPath(d.Path, id)
}

func writeMessages(noun string) Messages {
	return Messages{
		Created: Message{Title: "Success", Description: noun + " created successfully"},
		Updated: Message{Title: "Success", Description: noun + " updated successfully"},
		Deleted: Message{Title: "Success", Description: noun + " deleted successfully"},
		Fallback: map[Method]string{
			Create: "Failed to create " + strings.ToLower(noun),
			Update: "Failed to update " + strings.ToLower(noun),
			Delete: "Failed to delete " + strings.ToLower(noun),
		},
	}
}

// Writable resources.
var (
	Billing = Descriptor{
		Name:        "billing",
		Path:        "billing",
		Invalidates: []string{"billing", query.DashboardSummaryKey},
		Messages:    writeMessages("Billing record"),
	}
	Partners = Descriptor{
		Name:        "partners",
		Path:        "partners",
		Invalidates: []string{"partners", query.DashboardSummaryKey},
		Messages:    writeMessages("Partner"),
	}
	CompanySettings = Descriptor{
		Name:        "company-settings",
		Path:        "company-settings",
		Invalidates: []string{"company-settings", query.DashboardSummaryKey},
		Messages:    writeMessages("Company settings"),
	}
)

// Read-only resources.
var (
	Projects           = Descriptor{Name: "projects", Path: "projects"}
	Revenue            = Descriptor{Name: "revenue", Path: "revenue"}
	ProfitDistribution = Descriptor{Name: "profit-distribution", Path: "profit-distribution"}
	DashboardSummary   = Descriptor{Name: query.DashboardSummaryKey, Path: "dashboard-summary"}
)
