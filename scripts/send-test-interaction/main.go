// Sends a signed whitelist interaction to a running gateway. Useful for
// smoke testing the webhook path without involving the chat platform: point
// the gateway's public_key at the key printed by this script, then replay
// commands against /interactions.
package main

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/angelsmp/discord-whitelist/pkg/interaction"
)

func main() {
	url := flag.String("url", "http://localhost:8080/interactions", "Gateway interactions endpoint")
	seedHex := flag.String("seed", "", "Hex-encoded 32-byte ed25519 seed (generated when empty)")
	discordID := flag.String("discord-id", "111111111111111111", "Invoking account ID")
	username := flag.String("username", "Steve_123", "Username to whitelist")
	platform := flag.String("platform", "java", "Platform option (java or bedrock)")
	joinedAgo := flag.Duration("joined-ago", 96*time.Hour, "How long ago the member joined")
	flag.Parse()

	var private ed25519.PrivateKey
	if *seedHex == "" {
		var public ed25519.PublicKey
		var err error
		public, private, err = ed25519.GenerateKey(nil)
		if err != nil {
			log.Fatalf("failed to generate key: %v", err)
		}
		fmt.Printf("generated key; configure the gateway with public_key: %s\n", hex.EncodeToString(public))
	} else {
		seed, err := hex.DecodeString(*seedHex)
		if err != nil || len(seed) != ed25519.SeedSize {
			log.Fatalf("seed must be %d hex-encoded bytes", ed25519.SeedSize)
		}
		private = ed25519.NewKeyFromSeed(seed)
		fmt.Printf("public_key: %s\n", hex.EncodeToString(private.Public().(ed25519.PublicKey)))
	}

	payload := interaction.Interaction{
		Type: interaction.TypeApplicationCommand,
		Data: &interaction.CommandData{
			Name: "whitelist",
			Options: []interaction.Option{
				{Name: "username", Value: *username},
				{Name: "platform", Value: *platform},
			},
		},
		Member: &interaction.Member{
			User:     interaction.User{ID: *discordID},
			JoinedAt: time.Now().Add(-*joinedAgo),
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Fatalf("failed to marshal interaction: %v", err)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signature := ed25519.Sign(private, append([]byte(timestamp), body...))

	req, err := http.NewRequest(http.MethodPost, *url, bytes.NewReader(body))
	if err != nil {
		log.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	reply, _ := io.ReadAll(resp.Body)
	fmt.Printf("status: %s\n", resp.Status)
	fmt.Printf("body:   %s\n", reply)
}
