package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstName(t *testing.T) {
	assert.Empty(t, FirstName("Alice"))
	assert.NotEmpty(t, FirstName(""))
	assert.NotEmpty(t, FirstName("Alice1"))
	assert.NotEmpty(t, FirstName("Al ice"))
	assert.NotEmpty(t, FirstName("Aaaaaaaaaaaaaaaaaaaaa")) // 21 chars
}

func TestUsername(t *testing.T) {
	assert.Empty(t, Username("alice1234"))
	assert.Empty(t, Username("abcdefgh"))         // 8 chars, minimum
	assert.Empty(t, Username("a234567890123456")) // 16 chars, maximum

	assert.NotEmpty(t, Username(""))
	assert.NotEmpty(t, Username("alice12"))           // too short
	assert.NotEmpty(t, Username("a2345678901234567")) // too long
	assert.NotEmpty(t, Username("1alice123"))         // must start with a letter
	assert.NotEmpty(t, Username("Alice1234"))         // uppercase not allowed
	assert.NotEmpty(t, Username("alice_1234"))        // special chars not allowed
}

func TestPassword(t *testing.T) {
	assert.Empty(t, Password("Aa1!aaaa"))
	assert.Empty(t, Password("Zz9-abcdefghijkl")) // 16 chars, maximum

	assert.NotEmpty(t, Password(""))
	assert.NotEmpty(t, Password("Aa1!aaa"))           // too short
	assert.NotEmpty(t, Password("Aa1!aaaaaaaaaaaaa")) // too long
	assert.NotEmpty(t, Password("aa1!aaaa"))          // no uppercase
	assert.NotEmpty(t, Password("AA1!AAAA"))          // no lowercase
	assert.NotEmpty(t, Password("Aaa!aaaa"))          // no digit
	assert.NotEmpty(t, Password("Aa1aaaaa"))          // no special
	assert.NotEmpty(t, Password("Aa1!aaa "))          // space is invalid
}

func TestEmail(t *testing.T) {
	assert.Empty(t, Email("alice@example.com"))

	assert.NotEmpty(t, Email(""))
	assert.NotEmpty(t, Email("alice"))
	assert.NotEmpty(t, Email("alice@"))
	assert.NotEmpty(t, Email("alice@example"))
	assert.NotEmpty(t, Email("alice example@x.com"))
}

func TestContact(t *testing.T) {
	assert.Empty(t, Contact("9876543210"))

	assert.NotEmpty(t, Contact(""))
	assert.NotEmpty(t, Contact("987654321"))   // 9 digits
	assert.NotEmpty(t, Contact("98765432101")) // 11 digits
	assert.NotEmpty(t, Contact("987654321a"))
}

func TestGalleryName(t *testing.T) {
	assert.Empty(t, GalleryName("myphotos"))
	assert.Empty(t, GalleryName("abc"))

	assert.NotEmpty(t, GalleryName(""))
	assert.NotEmpty(t, GalleryName("ab"))
	assert.NotEmpty(t, GalleryName("aaaaaaaaaaaaaaaaaaaaa")) // 21 chars
}

func TestSignupFieldsCollectsPerField(t *testing.T) {
	errs := SignupFields("Alice", "Smith", "alice1234", "alice@example.com", "9876543210", "Aa1!aaaa")
	assert.Empty(t, errs)

	errs = SignupFields("", "Smith", "al", "bad", "12", "weak")
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "contact")
	assert.Contains(t, errs, "password")
	assert.NotContains(t, errs, "last_name")
}
