package handlers

import (
	"fmt"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"centratutor/database"
	"centratutor/internal/logger"
	"centratutor/internal/models"
	"centratutor/internal/utility"
	httpClient "centratutor/internal/utility/http"
)

var userCollection *mongo.Collection = database.OpenCollection(database.Client, "users")

type signInData struct {
	UserID       string `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// HashPassword encrypts the password before it is stored.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword checks the input password against the stored hash.
func VerifyPassword(providedPassword string, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(providedPassword)) == nil
}

func SignUp(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if !decodeBody(w, r, &user) {
		return
	}

	if err := validate.Struct(user); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "User already exists!", nil)
		return
	}

	hashed, err := HashPassword(*user.Password)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	user.Password = &hashed

	user.ID = primitive.NewObjectID()
	user.UserID = user.ID.Hex()
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	token, refreshToken, err := utility.GenerateAllTokens(*user.Email, *user.Name, user.UserID, user.Role)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	user.Token = &token
	user.RefreshToken = &refreshToken

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	// best effort, never fails the signup
	go func(email, name string) {
		msg := fmt.Sprintf("Hi %s, welcome to CentraTutor. Your account is ready.", name)
		if err := utility.SendMail(msg, email, "Welcome to CentraTutor"); err != nil {
			logger.Warnf("welcome mail to %s failed: %v", email, err)
		}
	}(*user.Email, *user.Name)

	httpClient.RespondCreated(w, signInData{
		UserID:       user.UserID,
		Name:         *user.Name,
		Email:        *user.Email,
		Role:         user.Role,
		Token:        token,
		RefreshToken: refreshToken,
	})
}

func Login(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var foundUser models.User
	err := userCollection.FindOne(ctx, bson.M{"email": payload.Email}).Decode(&foundUser)
	if err != nil {
		httpClient.RespondError(w, http.StatusUnauthorized, "login or password is incorrect", nil)
		return
	}

	if !VerifyPassword(payload.Password, *foundUser.Password) {
		httpClient.RespondError(w, http.StatusUnauthorized, "login or password is incorrect", nil)
		return
	}

	token, refreshToken, err := utility.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.UserID, foundUser.Role)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	_, err = userCollection.UpdateOne(ctx,
		bson.M{"user_id": foundUser.UserID},
		bson.M{"$set": bson.M{"token": token, "refresh_token": refreshToken, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	httpClient.RespondSuccess(w, signInData{
		UserID:       foundUser.UserID,
		Name:         *foundUser.Name,
		Email:        *foundUser.Email,
		Role:         foundUser.Role,
		Token:        token,
		RefreshToken: refreshToken,
	})
}

// Me returns the authenticated user's profile.
func Me(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, utility.ErrUserNotFound, nil)
		return
	}
	user.Password = nil
	user.Token = nil
	user.RefreshToken = nil
	httpClient.RespondSuccess(w, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func RefreshToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refreshToken"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.RefreshToken == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "refreshToken is required", nil)
		return
	}

	claims, errMsg := utility.ValidateToken(payload.RefreshToken)
	if errMsg != "" {
		httpClient.RespondError(w, http.StatusUnauthorized, errMsg, nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var user models.User
	if err := userCollection.FindOne(ctx, bson.M{"user_id": claims.Uid}).Decode(&user); err != nil {
		httpClient.RespondError(w, http.StatusUnauthorized, utility.ErrUserNotFound, nil)
		return
	}

	token, refreshToken, err := utility.GenerateAllTokens(*user.Email, *user.Name, user.UserID, user.Role)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	_, err = userCollection.UpdateOne(ctx,
		bson.M{"user_id": user.UserID},
		bson.M{"$set": bson.M{"token": token, "refresh_token": refreshToken, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}

	httpClient.RespondSuccess(w, map[string]string{"token": token, "refreshToken": refreshToken})
}
