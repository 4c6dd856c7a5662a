package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Smoke test against a running server on localhost:8080. Walks the whole
// flow: register, login, provision a project with an environment, add a
// branch, list projects, and round-trip a translation.

type envelope struct {
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

const baseURL = "http://localhost:8080"

func main() {
	fmt.Println("=== mlingo Backend Integration Test ===")

	email := fmt.Sprintf("smoke-%d@mlingo.app", time.Now().Unix())

	// 1. Register
	fmt.Println("\n1. Registering user...")
	env := call(http.MethodPost, "/v1/registerUser", map[string]interface{}{
		"user_email": email,
		"password":   "smoke-pass-1",
		"user_name":  "Smoke Tester",
	})
	var registered struct {
		UserID int64 `json:"user_id"`
	}
	decode(env.Data, &registered)
	fmt.Printf("✓ Registered user %d\n", registered.UserID)

	// 2. Login
	fmt.Println("\n2. Logging in...")
	env = call(http.MethodPost, "/v1/authenticateUser", map[string]string{
		"email":    email,
		"password": "smoke-pass-1",
	})
	var login struct {
		Token string `json:"token"`
	}
	decode(env.Data, &login)
	if login.Token == "" {
		log.Fatal("login returned no token")
	}
	fmt.Println("✓ Login successful, token issued")

	// 3. Create project with initial environment
	fmt.Println("\n3. Creating project...")
	env = call(http.MethodPost, fmt.Sprintf("/v2.0/%d/createProject", registered.UserID), map[string]interface{}{
		"project_name":     "Smoke Project",
		"environment_name": "main",
		"is_main":          true,
	})
	var project struct {
		ProjectID   int64 `json:"project_id"`
		Environment struct {
			EnvironmentID int64 `json:"environment_id"`
		} `json:"environment"`
	}
	decode(env.Data, &project)
	fmt.Printf("✓ Project %d with environment %d\n", project.ProjectID, project.Environment.EnvironmentID)

	// 4. Add a second branch
	fmt.Println("\n4. Creating staging branch...")
	call(http.MethodPost, fmt.Sprintf("/v2.0/%d/%d/createEnvironment", registered.UserID, project.ProjectID), map[string]interface{}{
		"environment_name": "staging",
	})
	fmt.Println("✓ Branch created")

	// 5. List projects, expect both environments
	fmt.Println("\n5. Listing projects...")
	req, err := http.NewRequest(http.MethodGet, baseURL+"/v2.0/getProjects", nil)
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("user_id", fmt.Sprintf("%d", registered.UserID))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatal("Failed to list projects:", err)
	}
	defer resp.Body.Close()

	var listEnv envelope
	if err := json.NewDecoder(resp.Body).Decode(&listEnv); err != nil {
		log.Fatal("Failed to decode project list:", err)
	}
	var projects []struct {
		Name string `json:"project_name"`
		Env  []struct {
			Name string `json:"environment_name"`
		} `json:"env"`
	}
	decode(listEnv.Data, &projects)
	for _, p := range projects {
		fmt.Printf("   Project %q with %d environments\n", p.Name, len(p.Env))
	}
	if len(projects) == 0 || len(projects[0].Env) < 2 {
		log.Fatal("expected a project with both environments in the listing")
	}
	fmt.Println("✓ Listing aggregates all environments")

	// 6. Translation round-trip
	fmt.Println("\n6. Adding language and translation...")
	call(http.MethodPost, "/v1/addLanguage", map[string]string{"language": "en"})
	call(http.MethodPost, "/v1/addTranslation", map[string]interface{}{
		"key": "smoke.greeting",
		"translations": []map[string]string{
			{"language": "en", "translation": "Hello"},
		},
	})
	env = call(http.MethodGet, "/v1/getAllTranslations", nil)
	fmt.Printf("✓ Translations listed: %s\n", string(env.Data))

	fmt.Println("\n=== Test Complete ===")
	fmt.Println("\nSummary:")
	fmt.Println("✓ Registration and login working")
	fmt.Println("✓ Project provisioning working")
	fmt.Println("✓ Branch creation working")
	fmt.Println("✓ Project listing aggregation working")
	fmt.Println("✓ Translation round-trip working")
}

func call(method, path string, body interface{}) envelope {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Fatal(err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		log.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		log.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	if env.StatusCode >= 400 {
		log.Fatalf("%s %s: %d %s", method, path, env.StatusCode, env.Message)
	}
	fmt.Printf("   %s %s -> %d %s\n", method, path, env.StatusCode, env.Message)
	return env
}

func decode(raw json.RawMessage, into interface{}) {
	if err := json.Unmarshal(raw, into); err != nil {
		log.Fatal("decode payload:", err)
	}
}
