package response

import "github.com/gin-gonic/gin"

// Message writes the flat `{message}` shape every non-payload response in
// this API uses, success and failure alike.
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}
