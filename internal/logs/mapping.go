package logs

import (
	"github.com/JaimeStill/aspiredu/pkg/query"
	"github.com/JaimeStill/aspiredu/pkg/repository"
)

var projection = query.
	NewProjectionMap("mdl_logstore_standard_log", "l").
	Project("id", "id").
	Project("eventname", "eventname").
	Project("component", "component").
	Project("action", "action").
	Project("target", "target").
	Project("COALESCE(l.objecttable, '')", "objecttable").
	Project("COALESCE(l.objectid, 0)", "objectid").
	Project("crud", "crud").
	Project("edulevel", "edulevel").
	Project("contextid", "contextid").
	Project("contextlevel", "contextlevel").
	Project("contextinstanceid", "contextinstanceid").
	Project("userid", "userid").
	Project("COALESCE(l.courseid, 0)", "courseid").
	Project("COALESCE(l.relateduserid, 0)", "relateduserid").
	Project("anonymous", "anonymous").
	Project("COALESCE(l.other, '')", "other").
	Project("timecreated", "timecreated")

// SortField is the only field log records order by.
const SortField = "timecreated"

func scanRecord(s repository.Scanner) (Record, error) {
	var r Record
	err := s.Scan(
		&r.ID, &r.EventName, &r.Component, &r.Action, &r.Target, &r.ObjectTable,
		&r.ObjectID, &r.CRUD, &r.EduLevel, &r.ContextID, &r.ContextLevel,
		&r.ContextInstanceID, &r.UserID, &r.CourseID, &r.RelatedUserID,
		&r.Anonymous, &r.Other, &r.TimeCreated,
	)
	return r, err
}

func scanCount(s repository.Scanner) (int, error) {
	var n int
	err := s.Scan(&n)
	return n, err
}

// builder applies the record filters of opts. A course filter is skipped for
// the site course, whose report covers the whole site.
func builder(opts Options, siteCourseID int64, crud []string, desc bool) *query.Builder {
	qb := query.NewBuilder(projection).OrderByFields([]query.SortField{
		{Field: SortField, Descending: desc},
		{Field: "id", Descending: desc},
	})

	if opts.CourseID != 0 && opts.CourseID != siteCourseID {
		qb.WhereEquals("courseid", opts.CourseID)
	}
	if opts.UserID != 0 {
		qb.WhereEquals("userid", opts.UserID)
	}
	if opts.GroupID != 0 {
		qb.Where("l.userid IN (SELECT gm.userid FROM mdl_groups_members gm WHERE gm.groupid = $%d)", opts.GroupID)
	}
	if opts.ModuleID != 0 {
		qb.Where("l.contextlevel = 70 AND l.contextinstanceid = $%d", opts.ModuleID)
	}
	if opts.Date != 0 {
		qb.WhereRange(SortField, opts.Date, opts.Date+daySeconds-1)
	}
	qb.WhereIn("crud", query.Values(crud))
	if opts.EduLevel != AllEduLevels {
		qb.WhereEquals("edulevel", opts.EduLevel)
	}
	return qb
}
