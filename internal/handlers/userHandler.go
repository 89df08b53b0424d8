package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	database "quizify/database"
	models "quizify/internal/models"
	utility "quizify/internal/utility"
	httpClient "quizify/internal/utility/http"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var validate = validator.New()
var userCollection *mongo.Collection = database.OpenCollection(database.Client, "user")

type SignInData struct {
	User_ID string `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Token   string `json:"token"`
}

type ProfileUpdate struct {
	Name  string `json:"name" validate:"required,max=60"`
	Email string `json:"email" validate:"required,email"`
}

// HashPassword is used to encrypt the password before it is stored in the DB
func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		log.Panic(err)
	}

	return string(bytes)
}

// VerifyPassword checks the input password while verifying it with the password in the DB.
func VerifyPassword(userPassword string, providedPassword string) (bool, string) {
	err := bcrypt.CompareHashAndPassword([]byte(providedPassword), []byte(userPassword))
	check := true
	msg := ""

	if err != nil {
		msg = "email or password is incorrect"
		check = false
	}

	return check, msg
}

func SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	validationErr := validate.Struct(user)
	if validationErr != nil {
		http.Error(w, "Fields not valid", http.StatusBadRequest)
		return
	}
	if user.Role == "" {
		user.Role = models.RoleStudent
	}

	// Password Hashing
	password := HashPassword(*user.Password)
	user.Password = &password

	// Checking if user already exists
	alreadyExists, err := userCollection.CountDocuments(ctx, bson.M{"email": user.Email})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if alreadyExists > 0 {
		http.Error(w, "User already exists!", http.StatusConflict)
		return
	}

	user.Created_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	user.Updated_at, _ = time.Parse(time.RFC3339, time.Now().Format(time.RFC3339))
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()

	token, refreshToken, err := utility.GenerateAllTokens(*user.Email, *user.Name, user.Role, user.User_id)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	user.Token = &token
	user.Refresh_token = &refreshToken

	_, err = userCollection.InsertOne(ctx, user)
	if err != nil {
		// the unique email index may race the count check above
		if mongo.IsDuplicateKeyError(err) {
			http.Error(w, "User already exists!", http.StatusConflict)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := SignInData{
		Token:   token,
		User_ID: user.User_id,
		Name:    *user.Name,
		Email:   *user.Email,
		Role:    user.Role,
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(data)
}

func Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var user models.User
	var foundUser models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if user.Email == nil || user.Password == nil {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	err := userCollection.FindOne(ctx, bson.M{"email": user.Email}).Decode(&foundUser)
	if err != nil {
		http.Error(w, "Email or Password is incorrect", http.StatusUnauthorized)
		return
	}
	passwordIsValid, msg := VerifyPassword(*user.Password, *foundUser.Password)
	if !passwordIsValid {
		http.Error(w, msg, http.StatusUnauthorized)
		return
	}

	token, refreshToken, err := utility.GenerateAllTokens(*foundUser.Email, *foundUser.Name, foundUser.Role, foundUser.User_id)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	utility.UpdateAllTokens(token, refreshToken, foundUser.User_id)

	data := SignInData{
		Token:   token,
		User_ID: foundUser.User_id,
		Name:    *foundUser.Name,
		Email:   *foundUser.Email,
		Role:    foundUser.Role,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var profile models.User
	err := userCollection.FindOne(ctx, bson.M{"user_id": user.User_id}).Decode(&profile)
	if err != nil {
		httpClient.RespondError(w, http.StatusNotFound, "User not found", err)
		return
	}
	profile.Password = nil
	profile.Token = nil
	profile.Refresh_token = nil

	httpClient.RespondSuccess(w, profile)
}

func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(r)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", fmt.Errorf("no user in context"))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Second)
	defer cancel()

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if err := validate.Struct(update); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	// Check if email is already in use by another account
	if user.Email == nil || update.Email != *user.Email {
		inUse, err := userCollection.CountDocuments(ctx, bson.M{
			"email":   update.Email,
			"user_id": bson.M{"$ne": user.User_id},
		})
		if err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
			return
		}
		if inUse > 0 {
			httpClient.RespondError(w, http.StatusConflict, "Email is already in use", nil)
			return
		}
	}

	filter := bson.M{"user_id": user.User_id}
	updateDoc := bson.M{"$set": bson.M{
		"name":       update.Name,
		"email":      update.Email,
		"updated_at": time.Now(),
	}}

	result, err := userCollection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating profile", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "User not found", nil)
		return
	}

	httpClient.RespondSuccess(w, result)
}
