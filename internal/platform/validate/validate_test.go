package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Payload {
	t.Helper()
	p, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return p
}

func TestDecode_RejectsNonObject(t *testing.T) {
	for _, body := range []string{"", "null", "[1,2]", "{bad"} {
		_, err := Decode(strings.NewReader(body))
		assert.ErrorIs(t, err, errors.NotValid, "body %q", body)
	}
}

func TestFields_MissingAreReportedTogether(t *testing.T) {
	p := decode(t, `{"name":"Rex","species":"","breed":null}`)
	f := p.Fields()
	f.String("name")
	f.String("species")
	f.String("breed")
	f.Date("dob")

	err := f.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.NotValid)
	assert.Equal(t, "Missing required fields: species, breed, dob", err.Error())
}

func TestFields_ParsesTypedValues(t *testing.T) {
	p := decode(t, `{
		"user_id": "7", "pet_id": 3, "weight": 22.5, "price": "10.25",
		"dob": "2020-01-01", "time": "09:05", "refill": "true", "notes": "  hi  "
	}`)
	f := p.Fields()

	assert.Equal(t, int64(7), f.ID("user_id"))
	assert.Equal(t, int64(3), f.ID("pet_id"))
	assert.Equal(t, 22.5, f.Float("weight"))
	assert.Equal(t, 10.25, f.Float("price"))
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), f.Date("dob"))
	assert.Equal(t, "09:05", f.Clock("time"))
	assert.True(t, f.OptBool("refill", false))
	require.NotNil(t, f.OptString("notes"))
	assert.Equal(t, "hi", *f.OptString("notes"))
	assert.Nil(t, f.OptDate("end_date"))
	assert.False(t, f.OptBool("missing", false))
	require.NoError(t, f.Err())
}

func TestFields_FormatErrors(t *testing.T) {
	cases := []struct {
		body string
		read func(f *Fields)
		want string
	}{
		{`{"time":"25:00"}`, func(f *Fields) { f.Clock("time") }, "Invalid time format."},
		{`{"time":"9:30"}`, func(f *Fields) { f.Clock("time") }, "Invalid time format."},
		{`{"date":"01/02/2024"}`, func(f *Fields) { f.Date("date") }, "Invalid date format."},
		{`{"date":"2024-02-30"}`, func(f *Fields) { f.Date("date") }, "Invalid date format."},
		{`{"end_date":"2024-1-1"}`, func(f *Fields) { f.OptDate("end_date") }, "Invalid date format."},
		{`{"pet_id":-1}`, func(f *Fields) { f.ID("pet_id") }, "pet_id must be a positive integer"},
		{`{"pet_id":3000000000}`, func(f *Fields) { f.ID("pet_id") }, "pet_id must be a positive integer"},
		{`{"pet_id":"abc"}`, func(f *Fields) { f.ID("pet_id") }, "pet_id must be a positive integer"},
		{`{"weight":"heavy"}`, func(f *Fields) { f.Float("weight") }, "weight must be a number"},
		{`{"name":5}`, func(f *Fields) { f.String("name") }, "name must be a string"},
		{`{"refill":"maybe"}`, func(f *Fields) { f.OptBool("refill", false) }, "refill must be a boolean"},
	}
	for _, tc := range cases {
		f := decode(t, tc.body).Fields()
		tc.read(f)
		err := f.Err()
		require.Error(t, err, tc.body)
		assert.Equal(t, tc.want, err.Error(), tc.body)
		assert.ErrorIs(t, err, errors.NotValid)
	}
}

func TestFields_AliasesUseFirstPresent(t *testing.T) {
	f := decode(t, `{"record_type":"Vaccine","event_name":"Rabies"}`).Fields()

	assert.Equal(t, "Vaccine", f.String("type", "record_type"))
	name := f.OptString("name", "event_name")
	require.NotNil(t, name)
	assert.Equal(t, "Rabies", *name)
	require.NoError(t, f.Err())

	f = decode(t, `{}`).Fields()
	f.String("type", "record_type")
	assert.Equal(t, "Missing required fields: type", f.Err().Error())
}

func TestFields_RawStringKeepsSpaces(t *testing.T) {
	f := decode(t, `{"password":"  pw  ","blank":"   "}`).Fields()
	assert.Equal(t, "  pw  ", f.RawString("password"))
	assert.Equal(t, "   ", f.RawString("blank"))
	require.NoError(t, f.Err())

	f = decode(t, `{"password":"","other":null}`).Fields()
	f.RawString("password")
	f.RawString("other")
	f.RawString("missing")
	assert.Equal(t, "Missing required fields: password, other, missing", f.Err().Error())

	f = decode(t, `{"password":12}`).Fields()
	f.RawString("password")
	assert.Equal(t, "password must be a string", f.Err().Error())
}
