package validators

import "go.mongodb.org/mongo-driver/bson"

var TravelerValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"fullName",
			"birthDate",
			"gender",
			"documentType",
			"documentNumber",
			"email",
			"contactPhone",
			"emergencyContact",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"fullName": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 120,
			},

			"birthDate": bson.M{
				"bsonType": "date",
			},

			"gender": bson.M{
				"enum": []string{"male", "female", "other"},
			},

			"documentType": bson.M{
				"enum": []string{"passport", "national_id", "driver_license"},
			},

			"documentNumber": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 40,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 5,
				"maxLength": 254,
			},

			"contactPhone": bson.M{
				"bsonType":  "string",
				"minLength": 7,
				"maxLength": 20,
			},

			"emergencyContact": bson.M{
				"bsonType": "object",
				"required": []string{"name", "phone", "relationship"},
				"properties": bson.M{
					"name": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 120,
					},
					"phone": bson.M{
						"bsonType":  "string",
						"minLength": 7,
						"maxLength": 20,
					},
					"relationship": bson.M{
						"bsonType":  "string",
						"minLength": 2,
						"maxLength": 60,
					},
				},
			},
		},
	},
}
