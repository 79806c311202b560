package deliver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/sago-ai/sago/internal/model"
)

func sampleReport() *model.Report {
	return &model.Report{
		CompanyName:      "Acme",
		DeckFilename:     "acme-seed.pdf",
		AnalyzedAt:       time.Now().UTC(),
		OverallScore:     0.62,
		ExecutiveSummary: "Analysis of Acme's pitch deck covered 2 claims.",
		Claims: []model.Claim{
			{ID: "c1", Text: "$50B TAM by 2027", Category: model.CategoryMarketSize},
			{ID: "c2", Text: "$5M ARR", Category: model.CategoryRevenue},
		},
		Verdicts: map[string]model.Verdict{
			"c1": {ClaimID: "c1", Status: model.StatusContradicted, Confidence: 0.8},
			"c2": {ClaimID: "c2", Status: model.StatusVerified, Confidence: 0.85},
		},
		Questions: []model.Question{
			{Text: "How did you size the TAM?", Priority: model.PriorityHigh},
			{Text: "What substantiates the growth rate?", Priority: model.PriorityMedium},
		},
	}
}

func TestMailDeliverer(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte

	m := NewMailDeliverer(model.DeliveryConfig{
		SMTPHost:  "smtp.example.com",
		SMTPPort:  587,
		SMTPUser:  "reports@fund.com",
		Recipient: "partner@fund.com",
	})
	m.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	receipt, err := m.Deliver(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if gotAddr != "smtp.example.com:587" {
		t.Errorf("unexpected addr: %s", gotAddr)
	}
	if gotFrom != "reports@fund.com" || len(gotTo) != 1 || gotTo[0] != "partner@fund.com" {
		t.Errorf("unexpected envelope: from=%s to=%v", gotFrom, gotTo)
	}

	body := string(gotMsg)
	for _, want := range []string{
		"Subject: Pitch Deck Analysis: Acme (score 62%)",
		"1. [high] How did you size the TAM?",
		"1 contradicted",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("mail body missing %q", want)
		}
	}

	if receipt.Channel != "mail" || receipt.Target != "partner@fund.com" || receipt.ID == "" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestMailDeliverer_NoRecipient(t *testing.T) {
	m := NewMailDeliverer(model.DeliveryConfig{})

	_, err := m.Deliver(context.Background(), sampleReport())

	var dErr *DeliveryError
	if !errors.As(err, &dErr) || dErr.Channel != "mail" {
		t.Fatalf("expected mail DeliveryError, got %v", err)
	}
}

func TestMailDeliverer_SendFailure(t *testing.T) {
	m := NewMailDeliverer(model.DeliveryConfig{Recipient: "partner@fund.com"})
	m.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		return errors.New("connection refused")
	}

	_, err := m.Deliver(context.Background(), sampleReport())

	var dErr *DeliveryError
	if !errors.As(err, &dErr) {
		t.Fatalf("expected DeliveryError, got %v", err)
	}
}

func TestSlackDeliverer(t *testing.T) {
	var payload string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		payload = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s := NewSlackDeliverer(server.URL)

	receipt, err := s.Deliver(context.Background(), sampleReport())
	if err != nil {
		t.Fatalf("Deliver failed: %v", err)
	}

	if !strings.Contains(payload, "Pitch Deck Analysis: Acme") {
		t.Errorf("webhook payload missing headline: %s", payload)
	}
	if !strings.Contains(payload, "62%") {
		t.Errorf("webhook payload missing score: %s", payload)
	}
	if receipt.Channel != "slack" {
		t.Errorf("unexpected receipt: %+v", receipt)
	}
}

func TestSlackDeliverer_BadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	s := NewSlackDeliverer(server.URL)

	_, err := s.Deliver(context.Background(), sampleReport())

	var dErr *DeliveryError
	if !errors.As(err, &dErr) || dErr.Channel != "slack" {
		t.Fatalf("expected slack DeliveryError, got %v", err)
	}
}
