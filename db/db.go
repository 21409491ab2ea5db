package db

import (
	"fmt"
	"os"
	"strconv"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"

	"github.com/gb0808/beatblox-midi/model"
)

// Enabled reports whether a metadata table is configured. Metadata is
// an optional join: transcription works the same without it.
func Enabled() bool {
	return os.Getenv("METADATA_TABLE") != ""
}

// GetMidiMetadata looks up title/artist/release metadata for a midi
// filename in the DynamoDB table named by METADATA_TABLE. Returns nil
// without error when the file has no entry.
func GetMidiMetadata(filename string) (*model.MidiMetadata, error) {
	table := os.Getenv("METADATA_TABLE")
	if table == "" {
		return nil, nil
	}

	config := aws.Config{}
	if endpoint := os.Getenv("METADATA_ENDPOINT"); endpoint != "" {
		config.Endpoint = &endpoint
		config.Region = aws.String("localhost")
	}
	sess, err := session.NewSession(&config)
	if err != nil {
		return nil, fmt.Errorf("could not create a DynamoDB session: %w", err)
	}

	client := dynamodb.New(sess)
	out, err := client.GetItem(&dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(filename)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("error from DynamoDB: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var m model.MidiMetadata
	if v := out.Item["Title"]; v != nil && v.S != nil {
		m.Title = *v.S
	}
	if v := out.Item["Artist"]; v != nil && v.S != nil {
		m.Artist = *v.S
	}
	if v := out.Item["Release"]; v != nil && v.S != nil {
		m.Release = *v.S
	}
	if v := out.Item["Year"]; v != nil && v.N != nil {
		year, _ := strconv.ParseUint(*v.N, 10, 32)
		m.Year = uint(year)
	}
	return &m, nil
}
