package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/gb0808/beatblox-midi/db"
	"github.com/gb0808/beatblox-midi/duration"
	"github.com/gb0808/beatblox-midi/model"
	"github.com/gb0808/beatblox-midi/parsing"
)

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the transcription API",
	Long:  `Serves the transcription API`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// HandleTranscribe accepts raw midi bytes and responds with the
// transcribed notation tree. Query params: precision (duration name),
// triplets (true/false), filename (enables the metadata join when a
// metadata table is configured).
func HandleTranscribe(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.New().String()
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		writeError(w, 400, "request body must be a midi file")
		return
	}

	precision := duration.DefaultPrecision
	if p := r.URL.Query().Get("precision"); p != "" {
		precision, err = duration.ParsePrecision(p)
		if err != nil {
			writeError(w, 400, err.Error())
			return
		}
	}
	tripletScan := r.URL.Query().Get("triplets") == "true"

	s, err := smf.ReadFrom(bytes.NewReader(body))
	if err != nil {
		writeError(w, 400, "could not decode midi file: "+err.Error())
		return
	}

	piece, err := parsing.ParseSMF(s, precision, tripletScan)
	if err != nil {
		log.Printf("request %v failed: %v", reqID, err)
		writeError(w, 422, err.Error())
		return
	}

	res := model.NewTranscribeResponse(piece)
	if filename := r.URL.Query().Get("filename"); filename != "" && db.Enabled() {
		metadata, err := db.GetMidiMetadata(filename)
		if err != nil {
			log.Printf("request %v metadata lookup failed: %v", reqID, err)
		} else {
			res.Metadata = metadata
		}
	}

	log.Printf("request %v transcribed %v tracks", reqID, len(res.Tracks))
	json.NewEncoder(w).Encode(res)
}

func serve() {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transcribe", HandleTranscribe).Methods("POST")
	handler := cors.Default().Handler(router)
	log.Printf("listening on %v", serveAddr)
	log.Fatal(http.ListenAndServe(serveAddr, handler))
}
