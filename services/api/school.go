package apisvc

import (
	"context"

	"github.com/trezcool/masomo-dashboard/core/school"
)

func (c *Client) Students(ctx context.Context, filter school.StudentFilter) (school.StudentList, error) {
	q := make(map[string]string)
	setString(q, "class_id", filter.ClassID)
	setString(q, "section_id", filter.SectionID)
	setString(q, "search", filter.Search)
	setInt(q, "page", filter.Page)
	setInt(q, "page_size", filter.PageSize)

	var list school.StudentList
	err := c.get(ctx, "/api/students", q, &list)
	return list, err
}

func (c *Client) Classes(ctx context.Context) ([]school.Class, error) {
	var classes []school.Class
	err := c.get(ctx, "/api/classes", nil, &classes)
	return classes, err
}

func (c *Client) Sections(ctx context.Context) ([]school.Section, error) {
	var sections []school.Section
	err := c.get(ctx, "/api/sections", nil, &sections)
	return sections, err
}

func (c *Client) CurrentAcademicYear(ctx context.Context) (school.AcademicYear, error) {
	var year school.AcademicYear
	err := c.get(ctx, "/api/academic-years/current", nil, &year)
	return year, err
}
