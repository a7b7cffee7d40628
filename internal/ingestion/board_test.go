package ingestion

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boardFixture = `<html><body>
<section class="jobs">
  <ul>
    <li>
      <a href="/remote-jobs/acme-senior-backend-engineer">
        <span class="company">Acme</span>
        <span class="title">Senior Backend Engineer (Go)</span>
        <span class="region">Anywhere in the World</span>
      </a>
    </li>
    <li class="view-all"><a href="/categories/all">View all</a></li>
    <li>
      <a href="/remote-jobs/beta-react-developer">
        <span class="company">Beta</span>
        <span class="title">React Developer</span>
        <span class="region">USA Only</span>
      </a>
    </li>
  </ul>
</section>
</body></html>`

func TestBoard_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(boardFixture))
	}))
	defer srv.Close()

	b := &Board{BoardName: "weworkremotely", BaseURL: srv.URL, Client: srv.Client()}
	jobs, err := b.Fetch(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 2, "view-all entry has no title span and must be skipped")

	first := jobs[0]
	assert.Equal(t, "weworkremotely-acme-senior-backend-engineer", first.ID)
	assert.Equal(t, "Senior Backend Engineer (Go)", first.Title)
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Anywhere in the World", first.Location)
	assert.Equal(t, srv.URL+"/remote-jobs/acme-senior-backend-engineer", first.ApplyURL)
	assert.Contains(t, first.Description, "Senior Backend Engineer (Go)")

	assert.Equal(t, "weworkremotely-beta-react-developer", jobs[1].ID)
}

func TestBoard_FetchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	b := &Board{BoardName: "weworkremotely", BaseURL: srv.URL, Client: srv.Client()}
	_, err := b.Fetch(context.Background())

	var srcErr *SourceError
	require.ErrorAs(t, err, &srcErr)
	assert.Equal(t, "weworkremotely", srcErr.Source)
}

func TestSlugFromPath(t *testing.T) {
	assert.Equal(t, "acme-engineer", slugFromPath("/remote-jobs/acme-engineer"))
	assert.Equal(t, "acme-engineer", slugFromPath("/remote-jobs/acme-engineer/"))
}
