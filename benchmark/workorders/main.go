package main

// Drives a running server (HTTP and gRPC) with concurrent status transitions and dashboard
// reads. Seed it first, e.g. `maintctl seed --file fixtures.example.yaml`.

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"liyu1981.xyz/maintenance-tracker/pkg/auth"
	mtGrpc "liyu1981.xyz/maintenance-tracker/pkg/grpc"
	"liyu1981.xyz/maintenance-tracker/pkg/models"
)

var maxWorkers int = 200
var actionsPerWorker int = 5
var httpHostPort string = "127.0.0.1:5000"
var grpcHostPort string = "127.0.0.1:50051"
var username string = "admin"
var password string = "change-me-now"

var httpClient *http.Client
var grpcClient *mtGrpc.Client
var grpcCtx context.Context

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

func main() {
	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", httpHostPort))
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	token := login()
	fmt.Printf("logged in as %s\n", username)

	conn, err := grpc.NewClient(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = mtGrpc.NewClient(conn)
	grpcCtx = mtGrpc.WithToken(context.Background(), token)

	fmt.Printf("gRPC client connected\n")

	ids := workOrderIDs()
	if len(ids) == 0 {
		log.Fatal("No work orders found; seed the database first")
	}
	fmt.Printf("found %v work orders\n", len(ids))

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := 0; i < maxWorkers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < actionsPerWorker; j++ {
				doAction(ids[randIntn(len(ids))])
			}
			fmt.Printf("\rworker %v done", i)
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	total := maxWorkers * actionsPerWorker
	fmt.Printf(
		"\n\rdid %v actions with %v workers: used time=%v seconds, throughput=%v action/second\n",
		total, maxWorkers, usedTime.Seconds(), float64(total)/usedTime.Seconds(),
	)
}

func randIntn(n int) int {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Intn(n)
}

func flipCoin() bool {
	return randIntn(2) == 0
}

// login posts the form with a cookie jar and hands back the session token for gRPC metadata.
func login() string {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Fatal(err)
	}
	httpClient = &http.Client{Jar: jar, Timeout: 10 * time.Second}

	form := url.Values{"username": {username}, "password": {password}}
	resp, err := httpClient.PostForm(fmt.Sprintf("http://%s/login", httpHostPort), form)
	if err != nil {
		log.Fatal("Failed to log in:", err)
	}
	resp.Body.Close()

	base, _ := url.Parse(fmt.Sprintf("http://%s/", httpHostPort))
	for _, cookie := range jar.Cookies(base) {
		if cookie.Name == auth.CookieName {
			return cookie.Value
		}
	}
	log.Fatal("Login failed: no session cookie")
	return ""
}

func workOrderIDs() []uint {
	resp, err := httpClient.Get(fmt.Sprintf("http://%s/api/work_orders", httpHostPort))
	if err != nil {
		log.Fatal("Failed to list work orders:", err)
	}
	defer resp.Body.Close()

	var orders []models.WorkOrder
	if err := json.NewDecoder(resp.Body).Decode(&orders); err != nil {
		log.Fatal("Failed to decode work orders:", err)
	}
	ids := make([]uint, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}
	return ids
}

func doAction(workOrderID uint) {
	actions := []func(){
		genTransitionAction(workOrderID),
		genStatsAction(),
		genTrendAction(),
	}
	action := actions[randIntn(len(actions))]
	action()
	time.Sleep(time.Duration(100+randIntn(500)) * time.Millisecond)
}

func genTransitionAction(workOrderID uint) func() {
	return func() {
		status := models.WorkOrderStatuses[randIntn(len(models.WorkOrderStatuses))]

		if flipCoin() {
			form := url.Values{
				"work_order_id": {fmt.Sprint(workOrderID)},
				"new_status":    {string(status)},
			}
			resp, err := httpClient.Post(
				fmt.Sprintf("http://%s/update_work_order_status", httpHostPort),
				"application/x-www-form-urlencoded",
				strings.NewReader(form.Encode()),
			)
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
			}
		} else {
			resp, err := grpcClient.UpdateWorkOrderStatus(grpcCtx, workOrderID, string(status))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			if !resp.GetFields()["success"].GetBoolValue() {
				fmt.Printf("\nresponse success = false: %v\n", resp)
			}
		}
	}
}

func genStatsAction() func() {
	return func() {
		if flipCoin() {
			resp, err := httpClient.Get(fmt.Sprintf("http://%s/api/work_order_stats", httpHostPort))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
			}
		} else {
			if _, err := grpcClient.GetWorkOrderStats(grpcCtx); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}

func genTrendAction() func() {
	return func() {
		if flipCoin() {
			resp, err := httpClient.Get(fmt.Sprintf("http://%s/api/work_order_completion_trend?days=30", httpHostPort))
			if err != nil {
				fmt.Printf("\nerror: %v\n", err)
				return
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				fmt.Printf("\nresponse status code != 200: %v\n", resp.Status)
			}
		} else {
			if _, err := grpcClient.GetCompletionTrend(grpcCtx, 30); err != nil {
				fmt.Printf("\nerror: %v\n", err)
			}
		}
	}
}
