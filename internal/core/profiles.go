package core

import (
	"github.com/google/uuid"
)

// Profiles are assembled by regrouping columns already present on the row.
// Nothing is invented; blank columns become blank fields.

func buildStudentProfile(row RawRow, accountID uuid.UUID, lk Lookups) StudentProfile {
	return StudentProfile{
		AccountID:    accountID,
		EnrollmentNo: row.Get(colEnrollmentNo),
		FirstName:    row.Get(colFirstName),
		MiddleName:   row.Get(colMiddleName),
		LastName:     row.Get(colLastName),
		DateOfBirth:  datePtr(row.Get(colDateOfBirth)),
		Gender:       row.Get(colGender),
		BloodGroup:   row.Get(colBloodGroup),
		Nationality:  row.Get(colNationality),
		Department:   affiliation(lk.Departments, row.Get(colDepartmentCode)),
		Course:       affiliation(lk.Courses, row.Get(colCourseCode)),
		Contact: ContactDetails{
			Permanent:      addressFrom(row, permanentCols),
			Correspondence: addressFrom(row, correspondenceCols),
			AlternatePhone: row.Get(colAlternatePhone),
			AlternateEmail: row.Get(colAlternateEmail),
		},
		Family: FamilyDetails{
			Father: parentFrom(row, fatherCols),
			Mother: parentFrom(row, motherCols),
			Guardian: Guardian{
				Name:     row.Get(colGuardianName),
				Phone:    row.Get(colGuardianPhone),
				Relation: row.Get(colGuardianRelation),
			},
		},
		Academics: AcademicHistory{
			ClassX:   schoolFrom(row, class10Cols),
			ClassXII: schoolFrom(row, class12Cols),
		},
		Admission: AdmissionDetails{
			ProgramLevel:  row.Get(colProgramLevel),
			AdmissionType: row.Get(colAdmissionType),
			Mode:          row.Get(colAdmissionMode),
			Session:       row.Get(colSession),
		},
	}
}

// buildFacultyProfile uses the single faculty address for both the permanent
// and correspondence blocks; the faculty template has no separate columns.
func buildFacultyProfile(row RawRow, accountID uuid.UUID, lk Lookups) FacultyProfile {
	addr := Address{
		Line:    row.Get(colAddress),
		City:    row.Get(colCity),
		State:   row.Get(colState),
		Pincode: row.Get(colPincode),
	}

	return FacultyProfile{
		AccountID:      accountID,
		EmployeeID:     row.Get(colEmployeeID),
		FirstName:      row.Get(colFirstName),
		LastName:       row.Get(colLastName),
		DateOfBirth:    datePtr(row.Get(colDateOfBirth)),
		Gender:         row.Get(colGender),
		Designation:    row.Get(colDesignation),
		Qualification:  row.Get(colQualification),
		Specialization: row.Get(colSpecialization),
		Department:     affiliation(lk.Departments, row.Get(colDepartmentCode)),
		Contact: ContactDetails{
			Permanent:      addr,
			Correspondence: addr,
		},
		Experience: ExperienceDetails{
			TotalTeachingExperience: row.Get(colTotalExperience),
		},
	}
}

// affiliation names a department or course by code. An unresolved code is
// kept verbatim as the name.
func affiliation(idx NaturalKeyIndex, code string) Affiliation {
	a := Affiliation{Code: code, Name: code}
	if ref, ok := idx.Resolve(code); ok {
		id := ref.ID
		a.ID = &id
		a.Name = ref.Name
	}
	return a
}

func addressFrom(row RawRow, cols addressColumns) Address {
	return Address{
		Line:    row.Get(cols.line),
		City:    row.Get(cols.city),
		State:   row.Get(cols.state),
		Pincode: row.Get(cols.pincode),
		Country: row.Get(cols.country),
	}
}

func parentFrom(row RawRow, cols parentColumns) Parent {
	return Parent{
		Name:       row.Get(cols.name),
		Phone:      row.Get(cols.phone),
		Occupation: row.Get(cols.occupation),
		Email:      row.Get(cols.email),
	}
}

func schoolFrom(row RawRow, cols schoolColumns) SchoolRecord {
	return SchoolRecord{
		Board:       row.Get(cols.board),
		School:      row.Get(cols.school),
		Percentage:  row.Get(cols.percentage),
		PassingYear: row.Get(cols.passingYear),
	}
}
