package views

import (
	"fmt"
	"strconv"
	"strings"

	"shelfwise/internal/domain"
)

// Columns returns the table headers shown for res
func Columns(res domain.Resource) []string {
	switch res {
	case domain.ResourceBooks:
		return []string{"Accession", "Title", "Author", "Year", "Location", "Status"}
	case domain.ResourceUsers:
		return []string{"Employee ID", "Name", "Email", "Department", "Role", "Status"}
	case domain.ResourceTransactions:
		return []string{"Book", "Member", "Type", "Issued", "Due", "Status"}
	default:
		return nil
	}
}

// StatusColumn is the index of the colour-coded status column, -1 if none
func StatusColumn(res domain.Resource) int {
	cols := Columns(res)
	if len(cols) == 0 {
		return -1
	}
	return len(cols) - 1
}

// BookRow renders one book as table cells
func BookRow(b domain.Book) []string {
	return []string{b.AccessionNumber, b.Title, b.AuthorPrimary, year(b.PublicationYear), b.Location(), b.BookStatus}
}

// UserRow renders one user as table cells
func UserRow(u domain.User) []string {
	return []string{u.EmployeeID, u.FullName, u.Email, u.Department, u.UserRole, u.UserStatus}
}

// TransactionRow renders one transaction as table cells
func TransactionRow(t domain.Transaction) []string {
	return []string{t.BookTitle, t.UserFullName, t.TransactionType, t.IssueDate, t.DueDate, t.Status}
}

// BookDetail renders a book for the pager
func BookDetail(b domain.Book) string {
	return detail(b.Title, []field{
		{"Accession number", b.AccessionNumber},
		{"Author", b.AuthorPrimary},
		{"Co-author", b.AuthorSecondary},
		{"Publisher", b.Publisher},
		{"Year", year(b.PublicationYear)},
		{"ISBN", b.ISBN},
		{"Language", b.Language},
		{"Location", b.Location()},
		{"Status", b.BookStatus},
		{"Condition", b.BookCondition},
		{"Reference only", yesNo(b.IsReferenceOnly)},
	})
}

// UserDetail renders a user for the pager
func UserDetail(u domain.User) string {
	return detail(u.FullName, []field{
		{"Employee ID", u.EmployeeID},
		{"Email", u.Email},
		{"Mobile", u.PhoneMobile},
		{"Division", u.Division},
		{"Department", u.Department},
		{"Designation", u.Designation},
		{"Role", u.UserRole},
		{"Status", u.UserStatus},
		{"Books issued", strconv.Itoa(u.BooksIssued)},
	})
}

// TransactionDetail renders a transaction for the pager
func TransactionDetail(t domain.Transaction) string {
	return detail(fmt.Sprintf("%s: %s", t.TransactionType, t.BookTitle), []field{
		{"Book", t.BookTitle},
		{"Member", t.UserFullName},
		{"Issued", t.IssueDate},
		{"Due", t.DueDate},
		{"Returned", t.ReturnDate},
		{"Renewals", strconv.Itoa(t.RenewalCount)},
		{"Status", t.Status},
		{"Notes", t.TransactionNotes},
	})
}

type field struct {
	label string
	value string
}

// detail lays fields out as an aligned "label  value" list; empty values are skipped
func detail(title string, fields []field) string {
	width := 0
	for _, f := range fields {
		if f.value != "" && len(f.label) > width {
			width = len(f.label)
		}
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(title))))
	b.WriteString("\n\n")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		fmt.Fprintf(&b, "%-*s  %s\n", width, f.label, f.value)
	}
	return b.String()
}

func year(y int) string {
	if y <= 0 {
		return ""
	}
	return strconv.Itoa(y)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
