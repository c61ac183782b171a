package auth

import (
	"encoding/json"
	"fmt"
	log "github.com/sirupsen/logrus"
	"io"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"
	"wq_alpha_gen/configs"
	"wq_alpha_gen/internal/constant"
)

var (
	BrainClient *BrainAuth
	once        sync.Once
	conf        *configs.GlobalConfig
)

func init() {
	conf = configs.GetGlobalConfig()
}

type user struct {
	ID string `json:"id"`
}

type token struct {
	Expiry float64 `json:"expiry"`
}

type loginResponse struct {
	User        user     `json:"user"`
	Token       token    `json:"token"`
	Permissions []string `json:"permissions"`
}

// BrainAuth keeps a logged-in platform session. The cookie jar carries the
// session; the timer tracks token expiry so requests can refresh lazily.
type BrainAuth struct {
	HttpClient  *http.Client
	expireTimer time.Timer
	mutex       sync.Mutex
}

func GetBrainAuth() *BrainAuth {
	once.Do(func() {
		BrainClient = newBrainAuth()
	})
	return BrainClient
}

func newBrainAuth() *BrainAuth {
	jar, err := cookiejar.New(nil)
	if err != nil {
		log.Errorf("Failed to create cookie jar: %s", err.Error())
		return nil
	}

	brain := &BrainAuth{
		HttpClient: &http.Client{Jar: jar},
		mutex:      sync.Mutex{},
	}

	expireTimeNum, err := brain.login()
	if err != nil {
		log.Errorf("newBrainAuth Failed {%s}", err.Error())
		return nil
	}
	if expireTimeNum == -1 {
		log.Error("newBrainAuth Failed in Login")
		return nil
	}

	brain.expireTimer = *time.NewTimer(time.Duration(0.9*expireTimeNum) * time.Second)
	return brain
}

func (auth *BrainAuth) login() (float64, error) {

	username := conf.CredentialConfig.UserName
	password := conf.CredentialConfig.Password

	req, err := http.NewRequest("POST", constant.BrainBaseUrl+constant.AuthUri, nil)
	if err != nil {
		return -1, fmt.Errorf("build auth request failed: %w", err)
	}
	req.SetBasicAuth(username, password)

	resp, err := auth.HttpClient.Do(req)
	if err != nil {
		log.Errorf("send auth request failed: %s", err.Error())
		return -1, fmt.Errorf("send auth request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Errorf("read auth response failed: %s", err.Error())
	}

	if resp.StatusCode >= 400 {
		log.Errorf("Code: %d, Message: %s", resp.StatusCode, string(body))
		return -1, fmt.Errorf("auth failed: %s", string(body))
	}
	var responseData loginResponse
	err = json.Unmarshal(body, &responseData)
	if err != nil {
		log.Errorf("unmarshal auth response failed: %s", err.Error())
		return -1, fmt.Errorf("unmarshal auth response failed: %w", err)
	}

	return responseData.Token.Expiry, nil

}

func (auth *BrainAuth) freshToken() error {
	auth.mutex.Lock()
	defer auth.mutex.Unlock()

	oldTimer := auth.expireTimer
	defer oldTimer.Stop()

	expireTimeNum, err := auth.login()
	if err != nil {
		log.Errorf("FreshBrainAuth Failed {%s}", err.Error())
		return err
	}
	auth.expireTimer = *time.NewTimer(time.Duration(0.9*expireTimeNum) * time.Second)
	return nil
}

// CheckFreshToken re-logs in when the expiry timer has fired.
func (auth *BrainAuth) CheckFreshToken() bool {

	select {
	case <-auth.expireTimer.C:
		err := auth.freshToken()
		if err != nil {
			log.Errorf("NeedFreshToken Failed {%s}", err.Error())
			return true
		}
	default:

	}
	return false
}
