package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sps2604/Prosearch-sub001/internal/logger"
	"github.com/sps2604/Prosearch-sub001/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeQuery(t *testing.T) {
	q, ok := search.Compose(search.NewCriteria("ux, research", "Pune", numPtr(2.5), 1000))
	require.True(t, ok)

	v, err := EncodeQuery(q)
	require.NoError(t, err)

	assert.Equal(t, "id,name,profession,address,experience_years,skills,avatar_url", v.Get("select"))
	assert.Equal(t, `(name.ilike."*ux, research*",profession.ilike."*ux, research*",skills.ilike."*ux, research*")`, v.Get("or"))
	assert.Equal(t, "ilike.*Pune*", v.Get("address"))
	assert.Equal(t, "gte.2.5", v.Get("experience_years"))
	assert.Equal(t, "50", v.Get("limit"))
}

func TestEncodeQuery_LocationOnlyHasNoOrGroup(t *testing.T) {
	q, _ := search.Compose(search.NewCriteria("", "Pune", nil, 20))
	v, err := EncodeQuery(q)
	require.NoError(t, err)

	assert.Empty(t, v.Get("or"))
	assert.Equal(t, "ilike.*Pune*", v.Get("address"))
	assert.Equal(t, "20", v.Get("limit"))
}

func TestEncodeQuery_WildcardsAreLiteral(t *testing.T) {
	q, ok := search.Compose(search.NewCriteria("50%_off*", "a_b", nil, 10))
	require.True(t, ok)

	v, err := EncodeQuery(q)
	require.NoError(t, err)

	assert.Equal(t, `(name.ilike."*50\\%\\_off_*",profession.ilike."*50\\%\\_off_*",skills.ilike."*50\\%\\_off_*")`, v.Get("or"))
	assert.Equal(t, `ilike.*a\_b*`, v.Get("address"))
}

func TestEncodeQuery_RejectsUnknownFields(t *testing.T) {
	_, err := EncodeQuery(search.Query{Fields: []string{"id", "password"}})
	assert.Error(t, err)
}

func TestRESTClient_Find(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/professionals", r.URL.Path)
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		assert.Equal(t, "(name.ilike.*designer*,profession.ilike.*designer*,skills.ilike.*designer*)", r.URL.Query().Get("or"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"1","name":"Asha","profession":"Product Designer","address":"Pune","experience_years":6,"skills":"figma","avatar_url":null},
			{"id":"2","name":"Meera","profession":"Designer","address":null,"experience_years":null,"skills":null,"avatar_url":"https://cdn/x.png"},
			{"id":"3","name":"Karan","profession":"Illustrator"}
		]`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL+"/rest/v1/", "professionals", "anon-key", logger.Discard())
	out := search.Run(context.Background(), client, search.NewCriteria("designer", "", nil, 20))

	assert.Empty(t, out.Error)
	assert.Empty(t, out.InfoMessage)
	require.Len(t, out.Results, 3)
	require.NotNil(t, out.Results[0].ExperienceYears)
	assert.Equal(t, 6.0, *out.Results[0].ExperienceYears)
	assert.Nil(t, out.Results[1].Address)
	require.NotNil(t, out.Results[1].AvatarURL)
	assert.Equal(t, "https://cdn/x.png", *out.Results[1].AvatarURL)
}

func TestRESTClient_ErrorBodyIsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"42703","message":"column professionals.skils does not exist"}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "professionals", "", logger.Discard())
	q, _ := search.Compose(search.NewCriteria("go", "", nil, 5))
	_, err := client.Find(context.Background(), q)

	var se *search.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, search.KindQueryRejected, se.Kind)
	assert.Equal(t, "column professionals.skils does not exist", search.UserMessage(err))
}

func TestRESTClient_ErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "professionals", "", logger.Discard())
	q, _ := search.Compose(search.NewCriteria("go", "", nil, 5))
	_, err := client.Find(context.Background(), q)
	assert.Equal(t, "Service Unavailable", search.UserMessage(err))
}

func TestRESTClient_UnreachableIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewRESTClient(url, "professionals", "", logger.Discard())
	out := search.Run(context.Background(), client, search.NewCriteria("go", "", nil, 5))
	assert.Equal(t, search.MsgUnexpected, out.Error)
	assert.Empty(t, out.Results)
}

func TestRESTClient_BadJSONIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"}`))
	}))
	defer srv.Close()

	client := NewRESTClient(srv.URL, "professionals", "", logger.Discard())
	q, _ := search.Compose(search.NewCriteria("go", "", nil, 5))
	_, err := client.Find(context.Background(), q)

	var se *search.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, search.KindTransport, se.Kind)
}
