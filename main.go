package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	"github.com/joho/godotenv"

	"therapist_dashboard/app/assessmentbundle"
	"therapist_dashboard/app/core"
	"therapist_dashboard/app/importbundle"
)

var (
	v     = "undefined"
	ormDB *gorm.DB
)

func main() {

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("----")
	startServer()
	log.Println("----")

}

func initBundles() []core.Bundle {
	return []core.Bundle{
		assessmentbundle.NewAssessmentBundle(ormDB),
		importbundle.NewImportBundle(ormDB),
	}
}

// Start with: therapist_dashboard -configFile=/var/therapist_dashboard/config.json
// Populate with: therapist_dashboard -importFile=/path/to/workbook.xlsx
func startServer() error {

	if err := godotenv.Load(); err == nil {
		log.Println("loaded .env")
	}

	configFile := ""
	importFile := ""
	flag.StringVar(&configFile, "configFile", "config.json", "a string")
	flag.StringVar(&importFile, "importFile", "", "path to an assessment workbook; import it and exit")
	flag.Parse()

	if configFile == "" {
		configFile = "config.json"
	}
	log.Println("using configfile: ", configFile)
	log.Println("----")

	core.Config = core.Configuration{}
	if file, err := os.Open(configFile); err != nil {
		log.Println("error: ", err)
	} else {
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&core.Config); err != nil {
			log.Println("error: ", err)
		}
		file.Close()
	}

	core.GetEnvironmentConfig(&core.Config)

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", core.Config.Database.User, core.Config.Database.Password, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database)
	log.Print("connecting to database... ")
	ormdb, err := gorm.Open("mysql", dataSourceName)
	for attempt := 1; err != nil; attempt++ {
		if attempt >= 5 {
			log.Fatalf("cannot connect to database %s@%s:%d/%s: %v", core.Config.Database.User, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database, err)
		}
		log.Println(err)
		time.Sleep(3 * time.Second)
		ormdb, err = gorm.Open("mysql", dataSourceName)
	}
	log.Println("done")

	ormdb.Exec("SET NAMES utf8")
	ormdb.Exec("SET time_zone = \"+00:00\"")
	ormDB = ormdb
	ormDB.LogMode(core.Config.Database.Debug)

	bundles := initBundles()

	if importFile != "" {
		importer := importbundle.NewImporter(ormDB)
		summary, err := importer.ImportWorkbook(importFile)
		if err != nil {
			log.Fatalf("import of %s failed: %v", importFile, err)
		}
		fmt.Println(summary.String())
		return nil
	}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1/").Subrouter()

	log.Print("Adding routes... ")
	for _, b := range bundles {
		for _, route := range b.GetRoutes() {
			s.Handle(route.Path, middleWare(route.Handler)).Methods(route.Method)
		}
	}
	log.Println("done")

	if core.Config.Server.DeliverFrontEnd {
		deliverFrontEnd(core.Config.Server.FrontEndPath, r)
	}

	address := fmt.Sprintf(":%d", core.Config.Server.InternalPort)
	log.Println(address)

	if core.Config.Server.WithSSL {
		log.Fatal(http.ListenAndServeTLS(address, core.Config.Server.SSLCertFile, core.Config.Server.SSLKeyFile, r))
	} else {
		log.Fatal(http.ListenAndServe(address, r))
	}

	return nil
}

func middleWare(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		h.ServeHTTP(w, r)

		log.Printf("%s %s - %.4fs", r.Method, r.RequestURI, time.Since(start).Seconds())
	})
}

func deliverFrontEnd(frontendOSPath string, r *mux.Router) {
	if frontendOSPath == "" {
		frontendOSPath = "./frontend"
	}
	r.HandleFunc("/{rest:.*}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		r.URL.Path = frontendOSPath + "/" + r.URL.Path
		r.URL.Path = strings.Replace(r.URL.Path, "..", "", -1)
		r.URL.Path = strings.Replace(r.URL.Path, "//", "/", -1)

		if info, err := os.Stat(r.URL.Path); err != nil || info.IsDir() {
			http.ServeFile(w, r, fmt.Sprintf("%s/index.html", frontendOSPath))
			return
		}
		http.ServeFile(w, r, r.URL.Path)
	})).Methods(http.MethodGet)
}
