package domain

import "strings"

// Resource names a searchable collection on the library API
type Resource string

const (
	ResourceBooks        Resource = "books"
	ResourceUsers        Resource = "users"
	ResourceTransactions Resource = "transactions"
)

// Resources lists every searchable collection in display order
var Resources = []Resource{ResourceBooks, ResourceUsers, ResourceTransactions}

// Valid reports whether r is a known resource
func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// Next returns the resource after r, wrapping around
func (r Resource) Next() Resource {
	for i, known := range Resources {
		if r == known {
			return Resources[(i+1)%len(Resources)]
		}
	}
	return Resources[0]
}

// Prev returns the resource before r, wrapping around
func (r Resource) Prev() Resource {
	for i, known := range Resources {
		if r == known {
			return Resources[(i+len(Resources)-1)%len(Resources)]
		}
	}
	return Resources[0]
}

// Title returns the display name, e.g. "Books"
func (r Resource) Title() string {
	if r == "" {
		return ""
	}
	return strings.ToUpper(string(r[:1])) + string(r[1:])
}

// Book is a catalogue entry as returned by the books endpoints
type Book struct {
	ID              string `json:"id"`
	AccessionNumber string `json:"accessionNumber"`
	Title           string `json:"title"`
	AuthorPrimary   string `json:"authorPrimary"`
	AuthorSecondary string `json:"authorSecondary,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationYear int    `json:"publicationYear,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Language        string `json:"language,omitempty"`
	LocationShelf   string `json:"locationShelf,omitempty"`
	LocationRack    string `json:"locationRack,omitempty"`
	BookStatus      string `json:"bookStatus"`
	BookCondition   string `json:"bookCondition,omitempty"`
	IsReferenceOnly bool   `json:"isReferenceOnly,omitempty"`
}

// Location returns "shelf.rack", or "-" when either part is unknown
func (b Book) Location() string {
	if b.LocationShelf == "" || b.LocationRack == "" {
		return "-"
	}
	return b.LocationShelf + "." + b.LocationRack
}

// User is a library member or staff account
type User struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employeeId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	PhoneMobile string `json:"phoneMobile,omitempty"`
	Division    string `json:"division,omitempty"`
	Department  string `json:"department"`
	Designation string `json:"designation,omitempty"`
	UserRole    string `json:"userRole"`
	UserStatus  string `json:"userStatus"`
	BooksIssued int    `json:"booksIssued"`
}

// Transaction is an issue/return/renewal record
type Transaction struct {
	ID               string `json:"id"`
	BookID           string `json:"bookId"`
	BookTitle        string `json:"bookTitle"`
	UserID           string `json:"userId"`
	UserFullName     string `json:"userFullName"`
	TransactionType  string `json:"transactionType"`
	IssueDate        string `json:"issueDate"`
	DueDate          string `json:"dueDate"`
	ReturnDate       string `json:"returnDate,omitempty"`
	RenewalCount     int    `json:"renewalCount"`
	Status           string `json:"status"`
	TransactionNotes string `json:"transactionNotes,omitempty"`
}
