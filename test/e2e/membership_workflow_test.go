//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pvginkel/electronics-inventory/internal/adapters/db"
	redis_a "github.com/pvginkel/electronics-inventory/internal/adapters/redis_adapter"
	"github.com/pvginkel/electronics-inventory/internal/core/domain"
	"github.com/pvginkel/electronics-inventory/internal/core/services"
	"github.com/pvginkel/electronics-inventory/internal/handlers"
	"github.com/pvginkel/electronics-inventory/test/helpers"
)

type MembershipE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
}

func (s *MembershipE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())

	logger := helpers.TestLogger()

	partRepo := db.NewPartRepository(s.testDB.Database, logger)
	membershipRepo := db.NewMembershipRepository(s.testDB.Database, logger)
	keyCache := redis_a.NewCache(s.testRedis.Client, time.Hour, logger)

	service := services.NewMembershipService(partRepo, membershipRepo, keyCache, time.Hour, logger)
	handler := handlers.NewMembershipHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/parts/memberships", handler.LookupBatch)
	mux.HandleFunc("GET /api/v1/parts/{key}/memberships", handler.LookupOne)

	s.server = httptest.NewServer(mux)
	s.client = s.server.Client()

	s.T().Cleanup(s.server.Close)
}

func (s *MembershipE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *MembershipE2ESuite) postBatch(keys []string, includeDone bool) *http.Response {
	body, err := json.Marshal(map[string]interface{}{
		"keys":         keys,
		"include_done": includeDone,
	})
	s.Require().NoError(err)

	resp, err := s.client.Post(
		s.server.URL+"/api/v1/parts/memberships",
		"application/json",
		bytes.NewReader(body))
	s.Require().NoError(err)
	return resp
}

func (s *MembershipE2ESuite) TestBulkLookupWorkflow() {
	// Seed two parts on a shared list, one with a done line
	part1 := helpers.SeedPart(s.T(), s.testDB.PgxPool, "R-0603-10K", "10k resistor")
	part2 := helpers.SeedPart(s.T(), s.testDB.PgxPool, "C-0805-100N", "100nF capacitor")
	helpers.SeedPart(s.T(), s.testDB.PgxPool, "IDLE-PART", "never listed")

	sellerID := helpers.SeedSeller(s.T(), s.testDB.PgxPool, "Mouser", "https://www.mouser.com")
	listID := helpers.SeedShoppingList(s.T(), s.testDB.PgxPool, "Bench restock", domain.StatusReady)

	helpers.SeedLine(s.T(), s.testDB.PgxPool, listID, part1, &sellerID, 25, domain.StatusReady)
	helpers.SeedLine(s.T(), s.testDB.PgxPool, listID, part1, nil, 5, domain.StatusDone)
	helpers.SeedLine(s.T(), s.testDB.PgxPool, listID, part2, nil, 100, domain.StatusConcept)

	resp := s.postBatch([]string{"C-0805-100N", "R-0603-10K", "IDLE-PART"}, false)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var result handlers.BulkMembershipResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&result))

	// Entries come back in request order regardless of seed order
	s.Require().Len(result.Results, 3)
	s.Equal("C-0805-100N", result.Results[0].Key)
	s.Equal("R-0603-10K", result.Results[1].Key)
	s.Equal("IDLE-PART", result.Results[2].Key)

	s.Len(result.Results[0].Memberships, 1)
	// Done line filtered out by default
	s.Len(result.Results[1].Memberships, 1)
	s.Equal("Mouser", result.Results[1].Memberships[0].Seller.Name)
	// Part with no memberships still gets an entry
	s.NotNil(result.Results[2].Memberships)
	s.Empty(result.Results[2].Memberships)
}

func (s *MembershipE2ESuite) TestIncludeDoneFlag() {
	partID := helpers.SeedPart(s.T(), s.testDB.PgxPool, "Q-2N7002", "mosfet")
	listID := helpers.SeedShoppingList(s.T(), s.testDB.PgxPool, "Old order", domain.StatusDone)
	helpers.SeedLine(s.T(), s.testDB.PgxPool, listID, partID, nil, 10, domain.StatusReady)

	resp := s.postBatch([]string{"Q-2N7002"}, false)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var filtered handlers.BulkMembershipResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&filtered))
	s.Empty(filtered.Results[0].Memberships)

	resp = s.postBatch([]string{"Q-2N7002"}, true)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var unfiltered handlers.BulkMembershipResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&unfiltered))
	s.Len(unfiltered.Results[0].Memberships, 1)
}

func (s *MembershipE2ESuite) TestUnknownKeysFailWholeBatch() {
	helpers.SeedPart(s.T(), s.testDB.PgxPool, "KNOWN", "exists")

	resp := s.postBatch([]string{"KNOWN", "GHOST-1", "GHOST-2"}, false)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusNotFound, resp.StatusCode)

	var errResp struct {
		Error       string   `json:"error"`
		MissingKeys []string `json:"missing_keys"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal([]string{"GHOST-1", "GHOST-2"}, errResp.MissingKeys)
}

func (s *MembershipE2ESuite) TestSingleLookupMatchesBatch() {
	partID := helpers.SeedPart(s.T(), s.testDB.PgxPool, "LED-0603-RED", "red led")
	listID := helpers.SeedShoppingList(s.T(), s.testDB.PgxPool, "LED order", domain.StatusReady)
	helpers.SeedLine(s.T(), s.testDB.PgxPool, listID, partID, nil, 50, domain.StatusConcept)

	resp, err := s.client.Get(s.server.URL + "/api/v1/parts/LED-0603-RED/memberships")
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var single handlers.MembershipEntry
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&single))

	batchResp := s.postBatch([]string{"LED-0603-RED"}, false)
	defer batchResp.Body.Close()

	var batch handlers.BulkMembershipResponse
	s.Require().NoError(json.NewDecoder(batchResp.Body).Decode(&batch))

	s.Require().Len(batch.Results, 1)
	s.Equal(batch.Results[0], single)
}

func (s *MembershipE2ESuite) TestKeyCacheSurvivesRepeatLookups() {
	helpers.SeedPart(s.T(), s.testDB.PgxPool, "IC-LM317", "regulator")

	for i := 0; i < 3; i++ {
		resp := s.postBatch([]string{"IC-LM317"}, false)
		s.Require().Equal(http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	// Second and later lookups resolve from the cache
	s.True(s.testRedis.Server.Exists("partkey:IC-LM317"))
}

func (s *MembershipE2ESuite) TestOversizedBatchRejected() {
	keys := make([]string, domain.MaxKeyBatchSize+1)
	for i := range keys {
		keys[i] = fmt.Sprintf("P-%d", i)
	}

	resp := s.postBatch(keys, false)
	defer resp.Body.Close()
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestMembershipE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e tests in short mode")
	}
	suite.Run(t, new(MembershipE2ESuite))
}
