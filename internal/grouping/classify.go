// Package grouping turns the ordered content-unit stream into questions and
// case studies, and assigns a semantic role to every embedded image.
package grouping

import "github.com/FaisalAwa/examforge/internal/exam"

// roleMarkers is the ordered marker list the classifier checks each text
// unit against. The first marker found in a unit becomes the current role.
var roleMarkers = []struct {
	marker string
	role   exam.Role
}{
	{exam.MarkerQuestionOptionImage, exam.RoleQuestion},
	{exam.MarkerAnswerOptionImage, exam.RoleAnswer},
	{exam.MarkerDescriptionImage, exam.RoleDescription},
	{exam.MarkerJustDropDown, exam.RoleJustDropdown},
	{exam.MarkerPositionedImage, exam.RolePositioned},
	{exam.MarkerBackgroundImage, exam.RoleBackground},
}

// ImageRoles maps an image's container path to its classified role.
type ImageRoles map[string]exam.Role

// For returns the role for an image path. Images that preceded any role
// marker default to description.
func (r ImageRoles) For(path string) exam.Role {
	if role, ok := r[path]; ok {
		return role
	}
	return exam.RoleDescription
}

// ClassifyImages scans units in order, maintaining a sticky current role:
// each role marker takes effect immediately and persists until a different
// marker is seen, and every image occurring while a role is set inherits it.
func ClassifyImages(units []exam.ContentUnit) ImageRoles {
	roles := make(ImageRoles)
	var current exam.Role

	for _, u := range units {
		for _, rm := range roleMarkers {
			if u.HasMarker(rm.marker) {
				current = rm.role
				break
			}
		}
		if current == "" {
			continue
		}
		for _, img := range u.Images {
			if img.Path != "" {
				roles[img.Path] = current
			}
		}
	}
	return roles
}
