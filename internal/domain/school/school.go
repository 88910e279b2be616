package school

// Record is a school as returned by the registry API. Every node may be
// absent, so nested objects are pointers and lists may be empty.
type Record struct {
	UUID        string       `json:"uuid"`
	EduOrg      *EduOrg      `json:"edu_org,omitempty"`
	Supplements []Supplement `json:"supplements,omitempty"`
}

// EduOrg holds the organization part of a record
type EduOrg struct {
	FullName    string       `json:"full_name,omitempty"`
	Region      *Named       `json:"region,omitempty"`
	ContactInfo *ContactInfo `json:"contact_info,omitempty"`
}

// ContactInfo holds the postal contact of an organization
type ContactInfo struct {
	PostAddress string `json:"post_address,omitempty"`
}

// Supplement is a license supplement; only the first one is displayed
type Supplement struct {
	Status              *Named               `json:"status,omitempty"`
	EducationalPrograms []EducationalProgram `json:"educational_programs,omitempty"`
}

// EducationalProgram carries the education level of a program
type EducationalProgram struct {
	EduLevel *Named `json:"edu_level,omitempty"`
}

// Named is the {"name": ...} shape the API uses for dictionaries
type Named struct {
	Name string `json:"name,omitempty"`
}

// Accessors below return "" when any node on the path is missing.

func (r Record) fullName() string {
	if r.EduOrg == nil {
		return ""
	}
	return r.EduOrg.FullName
}

func (r Record) regionName() string {
	if r.EduOrg == nil || r.EduOrg.Region == nil {
		return ""
	}
	return r.EduOrg.Region.Name
}

func (r Record) postAddress() string {
	if r.EduOrg == nil || r.EduOrg.ContactInfo == nil {
		return ""
	}
	return r.EduOrg.ContactInfo.PostAddress
}

func (r Record) firstSupplement() *Supplement {
	if len(r.Supplements) == 0 {
		return nil
	}
	return &r.Supplements[0]
}

func (r Record) educationLevel() string {
	s := r.firstSupplement()
	if s == nil || len(s.EducationalPrograms) == 0 {
		return ""
	}
	lvl := s.EducationalPrograms[0].EduLevel
	if lvl == nil {
		return ""
	}
	return lvl.Name
}

func (r Record) statusName() string {
	s := r.firstSupplement()
	if s == nil || s.Status == nil {
		return ""
	}
	return s.Status.Name
}
