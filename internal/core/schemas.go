package core

// Column names as they appear in template headers.
const (
	colName           = "name"
	colCode           = "code"
	colDepartmentCode = "departmentCode"
	colCourseCode     = "courseCode"
	colFees           = "fees"
	colEmail          = "email"
	colPhone          = "phone"
	colRole           = "role"
	colPassword       = "password"

	colFirstName   = "firstName"
	colMiddleName  = "middleName"
	colLastName    = "lastName"
	colDateOfBirth = "dateOfBirth"
	colGender      = "gender"

	colEnrollmentNo = "enrollmentNo"
	colBloodGroup   = "bloodGroup"
	colNationality  = "nationality"

	colEmployeeID      = "employeeId"
	colDesignation     = "designation"
	colQualification   = "qualification"
	colSpecialization  = "specialization"
	colAddress         = "address"
	colCity            = "city"
	colState           = "state"
	colPincode         = "pincode"
	colTotalExperience = "totalExperience"
)

// addressColumns names the five columns of one prefixed address block, such
// as permanentAddress, permanentCity, permanentState, permanentPincode and
// permanentCountry.
type addressColumns struct {
	line, city, state, pincode, country string
}

func addressBlock(prefix string) addressColumns {
	return addressColumns{
		line:    prefix + "Address",
		city:    prefix + "City",
		state:   prefix + "State",
		pincode: prefix + "Pincode",
		country: prefix + "Country",
	}
}

var (
	permanentCols      = addressBlock("permanent")
	correspondenceCols = addressBlock("correspondence")
)

// parentColumns names the columns of a father or mother block.
type parentColumns struct {
	name, phone, occupation, email string
}

func parentBlock(prefix string) parentColumns {
	return parentColumns{
		name:       prefix + "Name",
		phone:      prefix + "Phone",
		occupation: prefix + "Occupation",
		email:      prefix + "Email",
	}
}

var (
	fatherCols = parentBlock("father")
	motherCols = parentBlock("mother")
)

const (
	colGuardianName     = "guardianName"
	colGuardianPhone    = "guardianPhone"
	colGuardianRelation = "guardianRelation"
	colAlternatePhone   = "alternatePhone"
	colAlternateEmail   = "alternateEmail"
	colProgramLevel     = "programLevel"
	colAdmissionType    = "admissionType"
	colAdmissionMode    = "admissionMode"
	colSession          = "session"
)

// schoolColumns names the columns of a class-X or class-XII block.
type schoolColumns struct {
	board, school, percentage, passingYear string
}

func schoolBlock(prefix string) schoolColumns {
	return schoolColumns{
		board:       prefix + "Board",
		school:      prefix + "School",
		percentage:  prefix + "Percentage",
		passingYear: prefix + "PassingYear",
	}
}

var (
	class10Cols = schoolBlock("class10")
	class12Cols = schoolBlock("class12")
)

// schemaOf builds a ColumnSchema from alternating column/sample pairs, so the
// sample row always carries exactly the listed columns.
func schemaOf(pairs ...string) ColumnSchema {
	if len(pairs)%2 != 0 {
		panic("schemaOf: odd number of arguments")
	}
	s := ColumnSchema{
		Columns: make([]string, 0, len(pairs)/2),
		Sample:  make(RawRow, len(pairs)/2),
	}
	for i := 0; i < len(pairs); i += 2 {
		col := pairs[i]
		if _, dup := s.Sample[col]; dup {
			panic("schemaOf: duplicate column " + col)
		}
		s.Columns = append(s.Columns, col)
		s.Sample[col] = pairs[i+1]
	}
	return s
}

var departmentSchema = schemaOf(
	colName, "Computer Science",
	colCode, "CS",
)

var courseSchema = schemaOf(
	colName, "B.Tech Computer Science",
	colCode, "BTCS",
	colDepartmentCode, "CS",
	colFees, "50000",
)

var subjectSchema = schemaOf(
	colName, "Data Structures",
	colCode, "CS201",
	colCourseCode, "BTCS",
)

var adminSchema = schemaOf(
	colName, "Registrar Office",
	colEmail, "registrar@institute.edu",
	colPhone, "9876543210",
	colRole, string(RoleAdmin),
	colPassword, DefaultAdminPassword,
)

var studentSchema = schemaOf(
	colEnrollmentNo, "ENR2024001",
	colFirstName, "Aarav",
	colMiddleName, "Kumar",
	colLastName, "Sharma",
	colEmail, "aarav.sharma@student.institute.edu",
	colPhone, "9876500001",
	colDateOfBirth, "2005-04-12",
	colGender, "Male",
	colBloodGroup, "B+",
	colNationality, "Indian",
	colDepartmentCode, "CS",
	colCourseCode, "BTCS",

	permanentCols.line, "12 MG Road",
	permanentCols.city, "Pune",
	permanentCols.state, "Maharashtra",
	permanentCols.pincode, "411001",
	permanentCols.country, "India",
	correspondenceCols.line, "Hostel Block A, Room 14",
	correspondenceCols.city, "Pune",
	correspondenceCols.state, "Maharashtra",
	correspondenceCols.pincode, "411007",
	correspondenceCols.country, "India",
	colAlternatePhone, "9876500002",
	colAlternateEmail, "aarav.k.sharma@mail.com",

	fatherCols.name, "Rajesh Sharma",
	fatherCols.phone, "9876500003",
	fatherCols.occupation, "Engineer",
	fatherCols.email, "rajesh.sharma@mail.com",
	motherCols.name, "Sunita Sharma",
	motherCols.phone, "9876500004",
	motherCols.occupation, "Teacher",
	motherCols.email, "sunita.sharma@mail.com",
	colGuardianName, "Vikram Sharma",
	colGuardianPhone, "9876500005",
	colGuardianRelation, "Uncle",

	class10Cols.board, "CBSE",
	class10Cols.school, "Kendriya Vidyalaya Pune",
	class10Cols.percentage, "92.4",
	class10Cols.passingYear, "2021",
	class12Cols.board, "CBSE",
	class12Cols.school, "Kendriya Vidyalaya Pune",
	class12Cols.percentage, "89.6",
	class12Cols.passingYear, "2023",

	colProgramLevel, "Undergraduate",
	colAdmissionType, "Regular",
	colAdmissionMode, "Entrance Exam",
	colSession, "2024-2028",
)

var facultySchema = schemaOf(
	colEmployeeID, "EMP1001",
	colFirstName, "Meera",
	colLastName, "Iyer",
	colEmail, "meera.iyer@institute.edu",
	colPhone, "9876511111",
	colDateOfBirth, "1982-09-23",
	colGender, "Female",
	colDesignation, "Associate Professor",
	colDepartmentCode, "CS",
	colQualification, "PhD",
	colSpecialization, "Machine Learning",
	colAddress, "45 University Road",
	colCity, "Pune",
	colState, "Maharashtra",
	colPincode, "411007",
	colTotalExperience, "15",
)
