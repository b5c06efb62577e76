package logs

import (
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/aspiredu/pkg/listquery"
)

// Record is one event of the standard log store.
type Record struct {
	ID                int64  `json:"id"`
	EventName         string `json:"eventname"`
	Component         string `json:"component"`
	Action            string `json:"action"`
	Target            string `json:"target"`
	ObjectTable       string `json:"objecttable"`
	ObjectID          int64  `json:"objectid"`
	CRUD              string `json:"crud"`
	EduLevel          int    `json:"edulevel"`
	ContextID         int64  `json:"contextid"`
	ContextLevel      int    `json:"contextlevel"`
	ContextInstanceID int64  `json:"contextinstanceid"`
	UserID            int64  `json:"userid"`
	CourseID          int64  `json:"courseid"`
	RelatedUserID     int64  `json:"relateduserid"`
	Anonymous         int    `json:"anonymous"`
	Other             string `json:"other"`
	TimeCreated       int64  `json:"timecreated"`
}

// AllEduLevels disables the educational level filter.
const AllEduLevels = -1

// Options selects log records. Zero ids are unfiltered.
type Options struct {
	CourseID  int64
	UserID    int64
	GroupID   int64
	ModuleID  int64
	Date      int64
	ModAction string
	EduLevel  int
}

// DefaultOptions returns options selecting every site log record.
func DefaultOptions() Options {
	return Options{EduLevel: AllEduLevels}
}

const daySeconds = 86400

var actionAliases = map[string]string{
	"view":  "r",
	"-view": "cud",
}

// crud expands ModAction into the create/read/update/delete letters it selects.
func (o Options) crud() ([]string, error) {
	action := strings.ToLower(strings.TrimSpace(o.ModAction))
	if alias, ok := actionAliases[action]; ok {
		action = alias
	}

	letters := make([]string, 0, len(action))
	for _, c := range action {
		if !strings.ContainsRune("crud", c) {
			return nil, listquery.Invalid("modaction", o.ModAction, "c", "r", "u", "d", "cud", "view", "-view")
		}
		if l := string(c); !slices.Contains(letters, l) {
			letters = append(letters, l)
		}
	}
	return letters, nil
}

// Validate rejects unknown actions and educational levels.
func (o Options) Validate() error {
	if _, err := o.crud(); err != nil {
		return err
	}
	if o.EduLevel < AllEduLevels || o.EduLevel > 2 {
		return listquery.Invalid("edulevel", strconv.Itoa(o.EduLevel), "-1", "0", "1", "2")
	}
	return nil
}
