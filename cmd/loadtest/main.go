package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	vegeta "github.com/tsenart/vegeta/v12/lib"
)

const (
	teamsCount     = 10
	membersPerTeam = 8
	password       = "load-test-password"
)

type registerRequest struct {
	Username   string `json:"username"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"inviteCode,omitempty"`
}

type loginResponse struct {
	User struct {
		ID string `json:"id"`
	} `json:"user"`
	Token string `json:"token"`
}

type teamResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	InviteCode     string `json:"inviteCode"`
	PendingMembers []struct {
		ID string `json:"id"`
	} `json:"pendingMembers"`
}

type seededTeam struct {
	name         string
	managerToken string
}

var (
	targetHost string
	runID      = time.Now().UnixNano()
	teams      []seededTeam
	httpc      = &http.Client{Timeout: 10 * time.Second}
)

func doJSON(method, path, token string, body, out any) (int, error) {
	var reader *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewBuffer(b)
	} else {
		reader = &bytes.Buffer{}
	}

	req, err := http.NewRequest(method, targetHost+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := httpc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 400 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, err
		}
	}
	return resp.StatusCode, nil
}

func registerAndLogin(username, inviteCode string) (loginResponse, error) {
	var login loginResponse

	status, err := doJSON(http.MethodPost, "/api/auth/register", "", registerRequest{
		Username:   username,
		Firstname:  "Load",
		Lastname:   "Test",
		Email:      username + "@example.com",
		Password:   password,
		InviteCode: inviteCode,
	}, nil)
	if err != nil {
		return login, err
	}
	if status >= 400 {
		return login, fmt.Errorf("register %s returned %d", username, status)
	}

	status, err = doJSON(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	}, &login)
	if err != nil {
		return login, err
	}
	if status >= 400 {
		return login, fmt.Errorf("login %s returned %d", username, status)
	}
	return login, nil
}

// Seed: менеджеры, команды, участники через код приглашения
func seedData() error {
	log.Println("Seeding: creating managers and teams...")

	for t := 1; t <= teamsCount; t++ {
		manager, err := registerAndLogin(fmt.Sprintf("manager%d_%d", runID, t), "")
		if err != nil {
			return err
		}

		var team teamResponse
		status, err := doJSON(http.MethodPost, "/api/team", manager.Token, map[string]string{
			"name":  fmt.Sprintf("Loadteam%d%02d", runID, t),
			"sport": "football",
		}, &team)
		if err != nil {
			return err
		}
		if status >= 400 {
			return fmt.Errorf("team create returned %d", status)
		}

		for u := 1; u <= membersPerTeam; u++ {
			member, err := registerAndLogin(fmt.Sprintf("player%d_%d_%d", runID, t, u), team.InviteCode)
			if err != nil {
				return err
			}

			status, err := doJSON(http.MethodPost, "/api/team/user/add", manager.Token, map[string]string{
				"teamName": team.Name,
				"userId":   member.User.ID,
			}, nil)
			if err != nil {
				return err
			}
			if status >= 400 {
				log.Printf("WARN team/user/add returned %d\n", status)
			}
			time.Sleep(10 * time.Millisecond)
		}

		teams = append(teams, seededTeam{name: team.Name, managerToken: manager.Token})
	}

	log.Printf("Seed completed: teams=%d members=%d\n", len(teams), len(teams)*membersPerTeam)
	return nil
}

// Targeter
func makeTargeter() vegeta.Targeter {
	return func(t *vegeta.Target) error {
		r := rand.Float64()
		team := teams[rand.Intn(len(teams))]

		// 50% GET /api/team?team=
		if r < 0.50 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/team?team=%s", targetHost, url.QueryEscape(team.name))
			t.Body = nil
			t.Header = http.Header{"Accept": {"application/json"}}
			return nil
		}

		// 30% GET /api/activity?team=
		if r < 0.80 {
			t.Method = http.MethodGet
			t.URL = fmt.Sprintf("%s/api/activity?team=%s", targetHost, url.QueryEscape(team.name))
			t.Body = nil
			t.Header = http.Header{
				"Accept":        {"application/json"},
				"Authorization": {"Bearer " + team.managerToken},
			}
			return nil
		}

		// 15% GET /api/team/all
		if r < 0.95 {
			t.Method = http.MethodGet
			t.URL = targetHost + "/api/team/all"
			t.Body = nil
			t.Header = http.Header{"Accept": {"application/json"}}
			return nil
		}

		// 5% POST /api/activity
		opponent := teams[rand.Intn(len(teams))]
		body, _ := json.Marshal(map[string]string{
			"team":         team.name,
			"opponent":     opponent.name,
			"subject":      "Load game",
			"activityType": "game",
			"date":         time.Now().Add(24 * time.Hour).Format(time.RFC3339),
			"location":     "Stadium",
		})
		t.Method = http.MethodPost
		t.URL = targetHost + "/api/activity"
		t.Body = body
		t.Header = http.Header{
			"Content-Type":  {"application/json"},
			"Authorization": {"Bearer " + team.managerToken},
		}
		return nil
	}
}

// Attack
func runAttack(rps int, duration time.Duration) {
	rate := vegeta.Rate{Freq: rps, Per: time.Second}
	attacker := vegeta.NewAttacker()
	targeter := makeTargeter()

	var metrics vegeta.Metrics

	log.Printf("Starting attack: %s for %s", targetHost, duration)
	for res := range attacker.Attack(targeter, rate, duration, "load-test") {
		metrics.Add(res)
	}
	metrics.Close()

	fmt.Println("=== Results ===")
	fmt.Printf("Requests: %d\n", metrics.Requests)
	fmt.Printf("Success rate: %.4f%%\n", metrics.Success*100)
	fmt.Printf("Latency mean: %s\n", metrics.Latencies.Mean)
	fmt.Printf("Latency P95: %s\n", metrics.Latencies.P95)
	fmt.Printf("Latency P99: %s\n", metrics.Latencies.P99)
	for code, count := range metrics.StatusCodes {
		fmt.Printf("Status %s: %d\n", code, count)
	}
}

func main() {
	flag.StringVar(&targetHost, "target", "http://localhost:8080", "base URL of the running service")
	rps := flag.Int("rps", 5, "requests per second")
	duration := flag.Duration("duration", time.Minute, "attack duration")
	flag.Parse()

	if err := seedData(); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}

	runAttack(*rps, *duration)
}
