package models

var seedContacts = []Contact{
	{ID: "1", Name: "Priya Sharma", Email: "priya.sharma@example.com", Phone: "+91 98765 43210"},
	{ID: "2", Name: "Arjun Patel", Email: "arjun.p@example.com", Phone: "+91 87654 32109"},
	{ID: "3", Name: "Neha Gupta", Email: "neha.gupta@example.com", Phone: "+91 76543 21098"},
	{ID: "4", Name: "Raj Malhotra", Email: "raj.m@example.com", Phone: "+91 65432 10987"},
	{ID: "5", Name: "Ananya Singh", Email: "ananya.s@example.com", Phone: "+91 54321 09876"},
}

// SeedContacts returns a fresh copy of the fallback collection used when no
// valid persisted data exists.
func SeedContacts() []Contact {
	seed := make([]Contact, len(seedContacts))
	for i, contact := range seedContacts {
		seed[i] = contact.Clone()
	}
	return seed
}
